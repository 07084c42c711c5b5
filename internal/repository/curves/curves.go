package curves

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kbd/internal/model"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (that *Repository) SavePoints(ctx context.Context, points []*model.CurvePoint) error {
	query := that.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}, {Name: "time"}, {Name: "term_years"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"yield": gorm.Expr("EXCLUDED.yield"),
			}),
		},
	)

	if err := query.Create(points).Error; err != nil {
		return fmt.Errorf("upsert curve points in database: %w", err)
	}

	return nil
}

func (that *Repository) FetchSince(ctx context.Context, since time.Time) ([]*model.CurvePoint, error) {
	var points []*model.CurvePoint

	query := that.db.WithContext(ctx).Model(&model.CurvePoint{}).Where("date >= ?", since).Order("date DESC, time DESC, term_years ASC")
	if err := query.Find(&points).Error; err != nil {
		return nil, fmt.Errorf("fetch curve points from database: %w", err)
	}

	return points, nil
}
