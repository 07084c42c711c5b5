package usecases

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"kbd/internal/curve"
	"kbd/internal/model"
)

// FirstArchiveYear is the first year MOEX publishes ZCYC archives for.
const FirstArchiveYear = 2014

// ParallelImportLimit caps concurrent archive downloads during a backfill.
const ParallelImportLimit = 4

type CurveRepository interface {
	SavePoints(ctx context.Context, points []*model.CurvePoint) error
}

type CurveInteraction interface {
	GetYieldCurve(ctx context.Context) ([]curve.Record, error)
	GetYieldCurveArchive(ctx context.Context, year int) ([]curve.Record, error)
}

type UpdateCurveUseCase struct {
	logger      *slog.Logger
	repository  CurveRepository
	interaction CurveInteraction
	running     atomic.Bool
}

func NewUpdateCurveUseCase(logger *slog.Logger, repository CurveRepository, interaction CurveInteraction) *UpdateCurveUseCase {
	return &UpdateCurveUseCase{logger: logger.With("component", "update_curve"), repository: repository, interaction: interaction}
}

// UpdateCurve fetches the current G-curve table and persists its points.
// A run that overlaps a still-running previous one is skipped.
func (that *UpdateCurveUseCase) UpdateCurve(ctx context.Context) {
	log := that.logger.With("method", "UpdateCurve")

	if !that.running.CAS(false, true) {
		log.Info("previous curve update still running, skipping")
		return
	}
	defer that.running.Store(false)

	records, err := that.interaction.GetYieldCurve(ctx)
	if err != nil {
		log.Error("failed to get yield curve", "error", err)
		return
	}

	points := recordsToPoints(records)
	if len(points) == 0 {
		log.Info("no curve points parsed")
		return
	}

	if err = that.repository.SavePoints(ctx, points); err != nil {
		log.Error("failed to save curve points", "error", err)
		return
	}

	log.Info("curve points saved", "count", len(points))
}

// ImportHistory backfills the curve from the yearly ISS archives, starting
// at fromYear and ending with the current year.
func (that *UpdateCurveUseCase) ImportHistory(ctx context.Context, fromYear int) {
	log := that.logger.With("method", "ImportHistory")

	if fromYear < FirstArchiveYear {
		fromYear = FirstArchiveYear
	}

	parallelImport, parallelImportCtx := errgroup.WithContext(ctx)
	parallelImport.SetLimit(ParallelImportLimit)

	for year := fromYear; year <= time.Now().Year(); year++ {
		parallelImport.Go(func() error {
			records, err := that.interaction.GetYieldCurveArchive(parallelImportCtx, year)
			if err != nil {
				log.Error("failed to get curve archive", "error", err, "year", year)
				return nil
			}

			points := recordsToPoints(records)
			if len(points) == 0 {
				log.Info("archive is empty", "year", year)
				return nil
			}

			if err = that.repository.SavePoints(parallelImportCtx, points); err != nil {
				log.Error("failed to save curve points", "error", err, "year", year)
				return nil
			}

			log.Info("archive imported", "year", year, "count", len(points))
			return nil
		})
	}

	_ = parallelImport.Wait()
}

// recordsToPoints flattens curve records into storable points. Records with
// an unparseable date are skipped, unparseable cells were already omitted by
// the term map.
func recordsToPoints(records []curve.Record) []*model.CurvePoint {
	var points []*model.CurvePoint

	for _, record := range records {
		date := record.DateTime()
		if date.IsZero() {
			continue
		}

		for term, yield := range curve.TermMap(record) {
			points = append(points, &model.CurvePoint{
				Date:      date,
				Time:      record.Time,
				TermYears: term,
				Yield:     yield,
			})
		}
	}

	return points
}
