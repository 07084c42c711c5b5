package bonds

import (
	"context"
	"fmt"

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

func (that *Repository) SaveBonds(ctx context.Context, bonds []*model.Bond) error {
	query := that.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "secid"}, {Name: "boardid"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"shortname":      gorm.Expr("EXCLUDED.shortname"),
				"coupon_percent": gorm.Expr("EXCLUDED.coupon_percent"),
				"matdate":        gorm.Expr("EXCLUDED.matdate"),
				"face_value":     gorm.Expr("EXCLUDED.face_value"),
				"face_unit":      gorm.Expr("EXCLUDED.face_unit"),
				"list_level":     gorm.Expr("EXCLUDED.list_level"),
				"ytm":            gorm.Expr("EXCLUDED.ytm"),
				"duration_days":  gorm.Expr("EXCLUDED.duration_days"),
			}),
		},
	)

	if err := query.Create(bonds).Error; err != nil {
		return fmt.Errorf("upsert bonds in database: %w", err)
	}

	return nil
}

func (that *Repository) FetchAll(ctx context.Context) ([]*model.Bond, error) {
	var bonds []*model.Bond

	query := that.db.WithContext(ctx).Model(&model.Bond{}).Order("secid ASC")
	if err := query.Find(&bonds).Error; err != nil {
		return nil, fmt.Errorf("fetch bonds from database: %w", err)
	}

	return bonds, nil
}
