package model

import "time"

// Bond is a bond board snapshot row. Nullable columns stay nil when ISS had
// no value; a missing yield must never turn into a zero.
type Bond struct {
	SecID         string     `gorm:"column:secid;primaryKey"`
	BoardID       string     `gorm:"column:boardid;primaryKey"`
	ShortName     string     `gorm:"column:shortname"`
	CouponPercent *float64   `gorm:"column:coupon_percent"`
	MatDate       *time.Time `gorm:"column:matdate"`
	FaceValue     *float64   `gorm:"column:face_value"`
	FaceUnit      string     `gorm:"column:face_unit"`
	ListLevel     *int       `gorm:"column:list_level"`
	YTM           *float64   `gorm:"column:ytm"`
	DurationDays  *float64   `gorm:"column:duration_days"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (*Bond) TableName() string {
	return "bonds"
}
