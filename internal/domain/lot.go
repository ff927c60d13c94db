package domain

import (
	"errors"
	"time"
)

var (
	// ErrNoAvailableSlots возвращается при попытке занять слот в заполненной парковке
	ErrNoAvailableSlots = errors.New("domain: no available slots")

	// ErrNoOccupiedSlots возвращается при попытке освободить слот, когда занятых нет
	ErrNoOccupiedSlots = errors.New("domain: no occupied slots to release")

	// ErrInvalidSlotCounters возвращается, когда счетчики слотов нарушают инвариант
	ErrInvalidSlotCounters = errors.New("domain: slot counters violate available+occupied=total")
)

// LotStatus represents the display status of a parking lot
type LotStatus string

const (
	LotStatusAvailable LotStatus = "available"
	LotStatusFull      LotStatus = "full"
	LotStatusClosed    LotStatus = "closed"
)

// Location is a geographic coordinate
type Location struct {
	Latitude  float64
	Longitude float64
}

// SlotCounters holds the capacity counters of a lot.
// Invariant: Available + Occupied == Total, all non-negative.
type SlotCounters struct {
	Total     int
	Available int
	Occupied  int
}

// Valid reports whether the counters satisfy the capacity invariant
func (s SlotCounters) Valid() bool {
	return s.Total >= 0 && s.Available >= 0 && s.Occupied >= 0 &&
		s.Available+s.Occupied == s.Total
}

// Reserve takes one slot. Fails instead of driving Available below zero.
func (s *SlotCounters) Reserve() error {
	if s.Available <= 0 {
		return ErrNoAvailableSlots
	}
	s.Available--
	s.Occupied++
	return nil
}

// Release returns one slot. Fails instead of driving Occupied below zero.
func (s *SlotCounters) Release() error {
	if s.Occupied <= 0 {
		return ErrNoOccupiedSlots
	}
	s.Available++
	s.Occupied--
	return nil
}

// ParkingLot represents a parking facility owned by a provider
type ParkingLot struct {
	ID         int64
	ProviderID int64

	Name     string
	Address  string
	Location Location

	HourlyRate float64
	Currency   string

	Slots  SlotCounters
	Status LotStatus

	VehicleTypes []string
	Amenities    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveStatus recomputes the display status from the counters.
// A lot with no available slots is full; a full lot with freed slots reverts
// to available. Closed is set and cleared manually only.
func (l *ParkingLot) DeriveStatus() {
	if l.Slots.Available == 0 {
		l.Status = LotStatusFull
		return
	}
	if l.Status == LotStatusFull {
		l.Status = LotStatusAvailable
	}
}

// IsClosed returns true if the lot has been manually closed
func (l *ParkingLot) IsClosed() bool {
	return l.Status == LotStatusClosed
}

// SupportsVehicleType reports whether the lot accepts the given vehicle type.
// An empty whitelist accepts everything.
func (l *ParkingLot) SupportsVehicleType(vehicleType string) bool {
	if len(l.VehicleTypes) == 0 {
		return true
	}
	for _, vt := range l.VehicleTypes {
		if vt == vehicleType {
			return true
		}
	}
	return false
}
