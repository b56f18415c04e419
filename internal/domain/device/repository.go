package device

import "context"

// Repository is the read-side persistence boundary for the display surface.
type Repository interface {
	// FetchSnapshot returns the current view of all devices, left-joined
	// with yard and vehicle data, ordered by yard name then device code so
	// repeated renders of unchanged data produce the same layout. An empty
	// yardName returns every device.
	FetchSnapshot(ctx context.Context, yardName string) ([]View, error)

	// GetByCode returns one device row, or ErrDeviceNotFound.
	GetByCode(ctx context.Context, code string) (*Device, error)
}
