package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to active", StatusPending, StatusActive, false},
		{"confirmed to active", StatusConfirmed, StatusActive, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, false},
		{"active to completed", StatusActive, StatusCompleted, true},
		{"active to cancelled", StatusActive, StatusCancelled, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"double cancel rejected", StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, BookingStatus("parked").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
}

func TestDurationBetween(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		end     time.Time
		hours   int
		minutes int
	}{
		{"exact hours", start.Add(2 * time.Hour), 2, 0},
		{"hours and minutes", start.Add(2*time.Hour + 30*time.Minute), 2, 30},
		{"seconds are floored", start.Add(1*time.Hour + 59*time.Minute + 59*time.Second), 1, 59},
		{"zero window", start, 0, 0},
		{"negative window clamps to zero", start.Add(-time.Hour), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DurationBetween(start, tt.end)
			assert.Equal(t, tt.hours, d.Hours)
			assert.Equal(t, tt.minutes, d.Minutes)
		})
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.CanBeCancelled())

	b.Status = StatusActive
	assert.False(t, b.CanBeCancelled())

	b.Status = StatusCancelled
	assert.False(t, b.CanBeCancelled())
}
