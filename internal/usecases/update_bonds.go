package usecases

import (
	"context"
	"log/slog"
	"time"

	"kbd/internal/interaction/moex"
	"kbd/internal/model"
)

type BondsRepository interface {
	SaveBonds(ctx context.Context, bonds []*model.Bond) error
}

type BondsInteraction interface {
	GetBonds(ctx context.Context) ([]moex.Bond, error)
}

type UpdateBondsUseCase struct {
	logger      *slog.Logger
	repository  BondsRepository
	interaction BondsInteraction
}

func NewUpdateBondsUseCase(logger *slog.Logger, repository BondsRepository, interaction BondsInteraction) *UpdateBondsUseCase {
	return &UpdateBondsUseCase{logger: logger.With("component", "update_bonds"), repository: repository, interaction: interaction}
}

// UpdateBonds refreshes the stored bond board snapshot.
func (that *UpdateBondsUseCase) UpdateBonds(ctx context.Context) {
	log := that.logger.With("method", "UpdateBonds")

	bonds, err := that.interaction.GetBonds(ctx)
	if err != nil {
		log.Error("failed to get bonds", "error", err)
		return
	}

	dbBonds := make([]*model.Bond, 0, len(bonds))
	for _, bond := range bonds {
		dbBonds = append(dbBonds, &model.Bond{
			SecID:         bond.SecID,
			BoardID:       bond.BoardID,
			ShortName:     bond.ShortName,
			CouponPercent: bond.CouponPercent,
			MatDate:       parseMatDate(bond.MatDate),
			FaceValue:     bond.FaceValue,
			FaceUnit:      bond.FaceUnit,
			ListLevel:     bond.ListLevel,
			YTM:           bond.YTM,
			DurationDays:  bond.DurationDays,
		})
	}

	if len(dbBonds) == 0 {
		log.Info("no bonds parsed")
		return
	}

	if err = that.repository.SaveBonds(ctx, dbBonds); err != nil {
		log.Error("failed to save bonds", "error", err)
		return
	}

	log.Info("bonds saved", "count", len(dbBonds))
}

// parseMatDate keeps perpetual and unset maturities as nil. ISS marks them
// with an empty string or the 0000-00-00 sentinel.
func parseMatDate(raw string) *time.Time {
	if raw == "" || raw == "0000-00-00" {
		return nil
	}

	date, err := time.Parse(moex.MatDateLayout, raw)
	if err != nil {
		return nil
	}
	return &date
}
