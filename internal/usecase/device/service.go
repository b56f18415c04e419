package device

import (
	"context"
	"fmt"

	domainDevice "yard-monitor/internal/domain/device"
)

// Service serves the display surface: snapshot rows and occupancy counters.
type Service struct {
	repo domainDevice.Repository
}

func NewService(repo domainDevice.Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot returns the current ordered device views, optionally filtered to
// one yard.
func (s *Service) Snapshot(ctx context.Context, yardName string) ([]domainDevice.View, error) {
	views, err := s.repo.FetchSnapshot(ctx, yardName)
	if err != nil {
		return nil, fmt.Errorf("failed to load yard snapshot: %w", err)
	}
	return views, nil
}

// Stats aggregates the snapshot into the dashboard's headline counters.
func (s *Service) Stats(ctx context.Context, yardName string) (*domainDevice.OccupancyStats, error) {
	views, err := s.repo.FetchSnapshot(ctx, yardName)
	if err != nil {
		return nil, fmt.Errorf("failed to load yard snapshot: %w", err)
	}

	stats := &domainDevice.OccupancyStats{Total: len(views)}
	for _, view := range views {
		switch view.SpotStatus {
		case domainDevice.StatusAvailable:
			stats.Available++
		case domainDevice.StatusOccupied:
			stats.Occupied++
		default:
			stats.Unknown++
		}
	}

	return stats, nil
}

// GetDevice returns one device by code.
func (s *Service) GetDevice(ctx context.Context, code string) (*domainDevice.Device, error) {
	return s.repo.GetByCode(ctx, code)
}
