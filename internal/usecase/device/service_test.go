package device

import (
	"context"
	"errors"
	"testing"

	domainDevice "yard-monitor/internal/domain/device"
)

type fakeRepository struct {
	views    []domainDevice.View
	fetchErr error

	lastYardFilter string
}

func (r *fakeRepository) FetchSnapshot(_ context.Context, yardName string) ([]domainDevice.View, error) {
	r.lastYardFilter = yardName
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.views, nil
}

func (r *fakeRepository) GetByCode(_ context.Context, code string) (*domainDevice.Device, error) {
	for i := range r.views {
		if r.views[i].Code == code {
			return &domainDevice.Device{Code: code, SpotStatus: r.views[i].SpotStatus}, nil
		}
	}
	return nil, domainDevice.ErrDeviceNotFound
}

func yardViews() []domainDevice.View {
	plate := "ABC1D23"
	return []domainDevice.View{
		{Code: "S1", SpotStatus: domainDevice.StatusOccupied, VehiclePlate: &plate},
		{Code: "S2", SpotStatus: domainDevice.StatusAvailable},
		{Code: "S3", SpotStatus: domainDevice.StatusAvailable},
		{Code: "S4", SpotStatus: domainDevice.StatusUnknown},
	}
}

func TestSnapshotPassesYardFilter(t *testing.T) {
	repo := &fakeRepository{views: yardViews()}
	service := NewService(repo)

	views, err := service.Snapshot(context.Background(), "Patio Central")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if repo.lastYardFilter != "Patio Central" {
		t.Errorf("yard filter = %q, want Patio Central", repo.lastYardFilter)
	}
	if len(views) != 4 {
		t.Errorf("len(views) = %d, want 4", len(views))
	}
}

func TestStatsCountsByStatus(t *testing.T) {
	repo := &fakeRepository{views: yardViews()}
	service := NewService(repo)

	stats, err := service.Stats(context.Background(), "")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := domainDevice.OccupancyStats{Total: 4, Available: 2, Occupied: 1, Unknown: 1}
	if *stats != want {
		t.Errorf("Stats = %+v, want %+v", *stats, want)
	}
}

func TestStatsPropagatesRepositoryError(t *testing.T) {
	repo := &fakeRepository{fetchErr: errors.New("connection refused")}
	service := NewService(repo)

	if _, err := service.Stats(context.Background(), ""); err == nil {
		t.Fatal("expected error from failing repository")
	}
}

func TestGetDeviceNotFound(t *testing.T) {
	repo := &fakeRepository{views: yardViews()}
	service := NewService(repo)

	_, err := service.GetDevice(context.Background(), "NOPE")
	if !errors.Is(err, domainDevice.ErrDeviceNotFound) {
		t.Fatalf("GetDevice error = %v, want ErrDeviceNotFound", err)
	}
}
