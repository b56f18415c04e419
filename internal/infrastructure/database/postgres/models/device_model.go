package models

import "time"

// DeviceModel maps the devices table. Rows are keyed by code everywhere in
// the ingestion and read paths; the surrogate id only anchors foreign keys.
type DeviceModel struct {
	ID               int64      `gorm:"primaryKey"`
	Code             string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	SpotStatus       string     `gorm:"type:varchar(20)"`
	Distance         *float64   `gorm:"type:numeric"`
	ReadingTimestamp *time.Time `gorm:"type:timestamp"`
	YardID           *int64     `gorm:"column:id_yard;index"`
	MotorcycleID     *int64     `gorm:"index"`
}

func (DeviceModel) TableName() string {
	return "devices"
}

// MotorcycleModel maps the motorcycles table; only the plate is consumed.
type MotorcycleModel struct {
	ID      int64  `gorm:"primaryKey"`
	License string `gorm:"type:varchar(20)"`
}

func (MotorcycleModel) TableName() string {
	return "motorcycles"
}

// YardModel maps the yards table.
type YardModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100)"`
}

func (YardModel) TableName() string {
	return "yards"
}
