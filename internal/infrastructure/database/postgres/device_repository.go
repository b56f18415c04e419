package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domainDevice "yard-monitor/internal/domain/device"
	"yard-monitor/internal/infrastructure/database/postgres/models"
)

// DeviceRepository implements the device read-side repository on gorm.
type DeviceRepository struct {
	db *DB
}

func NewDeviceRepository(db *DB) domainDevice.Repository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) FetchSnapshot(ctx context.Context, yardName string) ([]domainDevice.View, error) {
	query := r.db.DB.WithContext(ctx).
		Table("devices d").
		Select("d.code, d.spot_status, d.distance, d.reading_timestamp, y.name AS yard_name, m.license").
		Joins("LEFT JOIN yards y ON d.id_yard = y.id").
		Joins("LEFT JOIN motorcycles m ON d.motorcycle_id = m.id").
		Order("y.name, d.code")

	if yardName != "" {
		query = query.Where("y.name = ?", yardName)
	}

	var rows []struct {
		Code             string
		SpotStatus       *string
		Distance         *float64
		ReadingTimestamp *time.Time
		YardName         *string
		License          *string
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch device snapshot: %w", err)
	}

	views := make([]domainDevice.View, len(rows))
	for i, row := range rows {
		status := ""
		if row.SpotStatus != nil {
			status = *row.SpotStatus
		}
		views[i] = domainDevice.View{
			Code:             row.Code,
			SpotStatus:       domainDevice.Normalize(status),
			Distance:         row.Distance,
			ReadingTimestamp: row.ReadingTimestamp,
			YardName:         row.YardName,
			VehiclePlate:     row.License,
		}
	}

	return views, nil
}

func (r *DeviceRepository) GetByCode(ctx context.Context, code string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("code = ?", code).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		ID:               m.ID,
		Code:             m.Code,
		SpotStatus:       domainDevice.Normalize(m.SpotStatus),
		Distance:         m.Distance,
		ReadingTimestamp: m.ReadingTimestamp,
		YardID:           m.YardID,
		MotorcycleID:     m.MotorcycleID,
	}
}
