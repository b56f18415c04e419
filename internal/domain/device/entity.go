package device

import "time"

// SpotStatus is the occupancy state of the parking spot a device monitors.
type SpotStatus string

const (
	StatusAvailable SpotStatus = "available"
	StatusOccupied  SpotStatus = "occupied"
	StatusUnknown   SpotStatus = "unknown"
)

// Normalize maps an absent status to StatusUnknown. Any other value is
// preserved as-is; the devices table is the final authority on legal values.
func Normalize(status string) SpotStatus {
	if status == "" {
		return StatusUnknown
	}
	return SpotStatus(status)
}

// Device is one physical sensor unit, identified by its stable code. The
// code doubles as the suffix of the device's command topic.
type Device struct {
	ID               int64
	Code             string
	SpotStatus       SpotStatus
	Distance         *float64
	ReadingTimestamp *time.Time
	YardID           *int64
	MotorcycleID     *int64
}

// View is a snapshot row as consumed by the display surface: the device
// joined with its yard name and, when occupied, the assigned vehicle plate.
type View struct {
	Code             string     `json:"code"`
	SpotStatus       SpotStatus `json:"spot_status"`
	Distance         *float64   `json:"distance,omitempty"`
	ReadingTimestamp *time.Time `json:"reading_timestamp,omitempty"`
	YardName         *string    `json:"yard_name,omitempty"`
	VehiclePlate     *string    `json:"vehicle_plate,omitempty"`
}

// OccupancyStats are the dashboard's headline counters for one yard (or the
// whole site when no yard filter is applied).
type OccupancyStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Unknown   int `json:"unknown"`
}
