package model

import "time"

// CurvePoint is one sampled point of the zero-coupon yield curve.
// Unique index are Date, Time and TermYears together.
type CurvePoint struct {
	Date      time.Time `gorm:"column:date;uniqueIndex:date_time_term"`
	Time      string    `gorm:"column:time;uniqueIndex:date_time_term"`
	TermYears float64   `gorm:"column:term_years;uniqueIndex:date_time_term"`
	Yield     float64   `gorm:"column:yield"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*CurvePoint) TableName() string {
	return "curve_points"
}
