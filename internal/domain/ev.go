package domain

import "time"

// EVStationStatus is the status of a charging station
type EVStationStatus string

const (
	EVStationAvailable   EVStationStatus = "available"
	EVStationCharging    EVStationStatus = "charging"
	EVStationMaintenance EVStationStatus = "maintenance"
)

// Valid returns true if the status is known
func (s EVStationStatus) Valid() bool {
	return s == EVStationAvailable || s == EVStationCharging || s == EVStationMaintenance
}

// EVStation is a charging point belonging to a parking lot.
// StationID is unique within the lot.
type EVStation struct {
	StationID string
	LotID     int64
	Status    EVStationStatus

	VehicleType *string

	// Occupancy of the charger; TimeRemainingMinutes is display-only data,
	// not driven by a timer
	CurrentVehiclePlate  *string
	TimeRemainingMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
