package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// transitions is the explicit state machine of a booking lifecycle.
// Completed and cancelled are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid returns true if the status is a known booking status
func (s BookingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo returns true if moving from s to next is a legal transition
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Duration is the booked time span, truncated to whole hours and minutes
type Duration struct {
	Hours   int
	Minutes int
}

// DurationBetween computes the booking duration from a time window.
// Hours and minutes are floor-divided, not rounded.
func DurationBetween(start, end time.Time) Duration {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	seconds := int(elapsed.Seconds())
	return Duration{
		Hours:   seconds / 3600,
		Minutes: (seconds % 3600) / 60,
	}
}

// CheckRecord captures a verified check-in or check-out event
type CheckRecord struct {
	Time     *time.Time
	Verified bool
}

// Booking represents a parking reservation.
// Identity fields are immutable once created; only status, payment status
// and check-in/check-out fields mutate afterwards.
type Booking struct {
	ID     int64
	UserID int64
	LotID  int64

	// Vehicle snapshot taken at booking time
	VehicleType  string
	VehiclePlate *string
	VehicleModel *string

	SlotNumber string
	StartTime  time.Time
	EndTime    time.Time
	Duration   Duration

	// Pricing snapshot taken from the lot at booking time
	HourlyRate  float64
	TotalAmount float64
	Currency    string

	Status        BookingStatus
	PaymentStatus PaymentStatus
	QRCode        string

	CheckIn  CheckRecord
	CheckOut CheckRecord

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsCheckedIn returns true if the booking has a verified check-in
func (b *Booking) IsCheckedIn() bool {
	return b.CheckIn.Verified
}
