package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"time"

	"kbd/internal/curve"
	"kbd/internal/model"
)

// CurveLookbackDays bounds how far back the screener looks for a curve
// snapshot. Anything older is considered stale.
const CurveLookbackDays = 30

// DaysPerYear converts day-based durations into year horizons.
const DaysPerYear = 365

type ScreenBondsRepository interface {
	FetchAll(ctx context.Context) ([]*model.Bond, error)
}

type ScreenCurveRepository interface {
	FetchSince(ctx context.Context, since time.Time) ([]*model.CurvePoint, error)
}

// Filters narrows the screened bond list. Nil and empty fields are inactive.
type Filters struct {
	CouponMin   *float64
	CouponMax   *float64
	MatDateFrom *time.Time
	MatDateTo   *time.Time
	ListLevels  []int
	FaceUnits   []string
}

// ScreenedBond is one screener row: the stored bond plus the curve-relative
// values computed for it. Nil values render as the "—" placeholder.
type ScreenedBond struct {
	Bond         *model.Bond
	HorizonYears *float64
	CurveYield   *float64
	Spread       *float64
	SpreadText   string
}

type ScreenBondsUseCase struct {
	logger           *slog.Logger
	bondsRepository  ScreenBondsRepository
	curvesRepository ScreenCurveRepository
}

func NewScreenBondsUseCase(logger *slog.Logger, bondsRepository ScreenBondsRepository, curvesRepository ScreenCurveRepository) *ScreenBondsUseCase {
	return &ScreenBondsUseCase{logger: logger.With("component", "screen_bonds"), bondsRepository: bondsRepository, curvesRepository: curvesRepository}
}

// Screen computes the yield spread of every stored bond against the latest
// curve snapshot and returns the filtered rows, widest spread first. Bonds
// without enough data keep a nil spread and go to the end of the list.
func (that *ScreenBondsUseCase) Screen(ctx context.Context, filters Filters) ([]ScreenedBond, error) {
	log := that.logger.With("method", "Screen")

	dbBonds, err := that.bondsRepository.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bonds: %w", err)
	}
	dbBonds = applyFilters(dbBonds, filters)

	points, err := that.curvesRepository.FetchSince(ctx, time.Now().AddDate(0, 0, -CurveLookbackDays))
	if err != nil {
		return nil, fmt.Errorf("fetch curve points: %w", err)
	}

	latest := curve.SelectLatest(groupPoints(points))

	terms := map[float64]float64{}
	asOf := time.Now()
	if latest != nil {
		terms = curve.TermMap(*latest)
		asOf = latest.DateTime()
	} else {
		log.Info("no curve snapshot available, spreads will be empty")
	}

	screened := make([]ScreenedBond, 0, len(dbBonds))
	for _, bond := range dbBonds {
		row := ScreenedBond{Bond: bond, HorizonYears: bondHorizon(bond, asOf)}

		if row.HorizonYears != nil {
			row.CurveYield = curve.Interpolate(terms, *row.HorizonYears)
		}

		row.Spread = curve.Spread(bond.YTM, row.CurveYield)
		row.SpreadText = curve.FormatSpread(row.Spread)

		screened = append(screened, row)
	}

	sort.SliceStable(screened, func(i, j int) bool {
		si, sj := screened[i].Spread, screened[j].Spread
		if si == nil {
			return false
		}
		if sj == nil {
			return true
		}
		return *si > *sj
	})

	return screened, nil
}

// bondHorizon derives the horizon (years) a bond should be priced at on the
// curve: duration when the bond traded, otherwise time to maturity.
func bondHorizon(bond *model.Bond, asOf time.Time) *float64 {
	if bond.DurationDays != nil && *bond.DurationDays > 0 {
		horizon := *bond.DurationDays / DaysPerYear
		return &horizon
	}

	if bond.MatDate != nil && bond.MatDate.After(asOf) {
		horizon := bond.MatDate.Sub(asOf).Hours() / 24 / DaysPerYear
		return &horizon
	}

	return nil
}

// groupPoints reassembles stored points into curve records keyed by their
// (date, time) snapshot.
func groupPoints(points []*model.CurvePoint) []curve.Record {
	bySnapshot := make(map[string]*curve.Record)

	for _, point := range points {
		date := point.Date.Format(curve.DateLayout)
		key := date + "|" + point.Time

		record, ok := bySnapshot[key]
		if !ok {
			record = &curve.Record{Date: date, Time: point.Time, Cells: map[string]any{}}
			bySnapshot[key] = record
		}

		label := curve.TermLabel(strconv.FormatFloat(point.TermYears, 'f', -1, 64))
		record.Cells[label] = point.Yield
	}

	records := make([]curve.Record, 0, len(bySnapshot))
	for _, record := range bySnapshot {
		records = append(records, *record)
	}

	return records
}

// applyFilters mirrors the bond table filters: coupon range, maturity
// window, listing levels and face-value currencies. Bonds missing a filtered
// field are excluded by that filter.
func applyFilters(dbBonds []*model.Bond, filters Filters) []*model.Bond {
	filtered := make([]*model.Bond, 0, len(dbBonds))

	for _, bond := range dbBonds {
		if filters.CouponMin != nil && (bond.CouponPercent == nil || *bond.CouponPercent < *filters.CouponMin) {
			continue
		}
		if filters.CouponMax != nil && (bond.CouponPercent == nil || *bond.CouponPercent > *filters.CouponMax) {
			continue
		}
		if filters.MatDateFrom != nil && (bond.MatDate == nil || bond.MatDate.Before(*filters.MatDateFrom)) {
			continue
		}
		if filters.MatDateTo != nil && (bond.MatDate == nil || bond.MatDate.After(*filters.MatDateTo)) {
			continue
		}
		if len(filters.ListLevels) > 0 && (bond.ListLevel == nil || !slices.Contains(filters.ListLevels, *bond.ListLevel)) {
			continue
		}
		if len(filters.FaceUnits) > 0 && !slices.Contains(filters.FaceUnits, bond.FaceUnit) {
			continue
		}

		filtered = append(filtered, bond)
	}

	return filtered
}
