package ingestion

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"yard-monitor/internal/infrastructure/database/postgres"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *postgres.DB) *Repository {
	return &Repository{db: db.DB}
}

// ApplyStatusUpdate unconditionally sets spot_status, distance and
// reading_timestamp for the row matching code. Zero affected rows means the
// device has not been provisioned yet; that is not an error, telemetry may
// arrive before the row exists.
func (r *Repository) ApplyStatusUpdate(ctx context.Context, code, status string, distance *float64) (int64, error) {
	updates := map[string]interface{}{
		"spot_status":       status,
		"distance":          distance,
		"reading_timestamp": time.Now(),
	}

	result := r.db.WithContext(ctx).
		Table("devices").
		Where("code = ?", code).
		Updates(updates)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to apply status update for device %s: %w", code, result.Error)
	}

	return result.RowsAffected, nil
}

// ClearVehicleAssignment nulls the vehicle reference for the row matching
// code. It is an idempotent no-op when no vehicle is assigned, and a
// separate auto-committed statement from the status write.
func (r *Repository) ClearVehicleAssignment(ctx context.Context, code string) (int64, error) {
	result := r.db.WithContext(ctx).
		Table("devices").
		Where("code = ?", code).
		Update("motorcycle_id", nil)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear vehicle assignment for device %s: %w", code, result.Error)
	}

	return result.RowsAffected, nil
}
