package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCountersReserve(t *testing.T) {
	s := SlotCounters{Total: 10, Available: 3, Occupied: 7}

	require.NoError(t, s.Reserve())
	assert.Equal(t, 2, s.Available)
	assert.Equal(t, 8, s.Occupied)
	assert.True(t, s.Valid())

	require.NoError(t, s.Reserve())
	require.NoError(t, s.Reserve())
	assert.Equal(t, 0, s.Available)

	err := s.Reserve()
	assert.ErrorIs(t, err, ErrNoAvailableSlots)
	assert.Equal(t, 0, s.Available)
	assert.Equal(t, 10, s.Occupied)
}

func TestSlotCountersRelease(t *testing.T) {
	s := SlotCounters{Total: 5, Available: 4, Occupied: 1}

	require.NoError(t, s.Release())
	assert.Equal(t, 5, s.Available)
	assert.Equal(t, 0, s.Occupied)
	assert.True(t, s.Valid())

	err := s.Release()
	assert.ErrorIs(t, err, ErrNoOccupiedSlots)
	assert.Equal(t, 5, s.Available)
}

func TestSlotCountersValid(t *testing.T) {
	assert.True(t, SlotCounters{Total: 10, Available: 3, Occupied: 7}.Valid())
	assert.True(t, SlotCounters{}.Valid())
	assert.False(t, SlotCounters{Total: 10, Available: 5, Occupied: 4}.Valid())
	assert.False(t, SlotCounters{Total: 1, Available: -1, Occupied: 2}.Valid())
}

func TestDeriveStatus(t *testing.T) {
	t.Run("last slot taken makes lot full", func(t *testing.T) {
		lot := &ParkingLot{
			Slots:  SlotCounters{Total: 2, Available: 0, Occupied: 2},
			Status: LotStatusAvailable,
		}
		lot.DeriveStatus()
		assert.Equal(t, LotStatusFull, lot.Status)
	})

	t.Run("freed slot reopens full lot", func(t *testing.T) {
		lot := &ParkingLot{
			Slots:  SlotCounters{Total: 2, Available: 1, Occupied: 1},
			Status: LotStatusFull,
		}
		lot.DeriveStatus()
		assert.Equal(t, LotStatusAvailable, lot.Status)
	})

	t.Run("closed lot with free slots stays closed", func(t *testing.T) {
		lot := &ParkingLot{
			Slots:  SlotCounters{Total: 2, Available: 2, Occupied: 0},
			Status: LotStatusClosed,
		}
		lot.DeriveStatus()
		assert.Equal(t, LotStatusClosed, lot.Status)
	})

	t.Run("closed lot with no free slots becomes full", func(t *testing.T) {
		// Счетчики важнее ручного статуса: заполненная парковка показывается как full
		lot := &ParkingLot{
			Slots:  SlotCounters{Total: 1, Available: 0, Occupied: 1},
			Status: LotStatusClosed,
		}
		lot.DeriveStatus()
		assert.Equal(t, LotStatusFull, lot.Status)
	})
}

func TestSupportsVehicleType(t *testing.T) {
	lot := &ParkingLot{VehicleTypes: []string{"car", "bike"}}
	assert.True(t, lot.SupportsVehicleType("car"))
	assert.False(t, lot.SupportsVehicleType("truck"))

	open := &ParkingLot{}
	assert.True(t, open.SupportsVehicleType("truck"))
}
