package checkout_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	err     error

	checkedOutAt *time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) CheckOut(_ context.Context, _ int64, at time.Time) error {
	f.checkedOutAt = &at
	return nil
}

type fakeLotRepo struct {
	lot *domain.ParkingLot

	updatedSlots  *domain.SlotCounters
	updatedStatus domain.LotStatus
}

func (f *fakeLotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	return f.lot, nil
}

func (f *fakeLotRepo) UpdateSlots(_ context.Context, _ int64, slots domain.SlotCounters, status domain.LotStatus) error {
	f.updatedSlots = &slots
	f.updatedStatus = status
	return nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var checkoutTime = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, lots *fakeLotRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, lots, tx, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: checkoutTime}
	return uc
}

func activeBooking() *domain.Booking {
	checkIn := checkoutTime.Add(-2 * time.Hour)
	return &domain.Booking{
		ID:      5,
		UserID:  42,
		LotID:   7,
		Status:  domain.StatusActive,
		CheckIn: domain.CheckRecord{Time: &checkIn, Verified: true},
	}
}

func testLot() *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:     7,
		Slots:  domain.SlotCounters{Total: 10, Available: 0, Occupied: 10},
		Status: domain.LotStatusFull,
	}
}

func TestExecute_Checkout(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	lots := &fakeLotRepo{lot: testLot()}

	uc := newTestUseCase(bookings, lots, &fakeTxManager{})

	booking, err := uc.Execute(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, booking.Status)
	assert.True(t, booking.CheckOut.Verified)
	require.NotNil(t, booking.CheckOut.Time)
	assert.Equal(t, checkoutTime, *booking.CheckOut.Time)

	require.NotNil(t, bookings.checkedOutAt)
	assert.Equal(t, checkoutTime, *bookings.checkedOutAt)

	// Место освобождено, заполненная парковка снова доступна
	require.NotNil(t, lots.updatedSlots)
	assert.Equal(t, 1, lots.updatedSlots.Available)
	assert.Equal(t, 9, lots.updatedSlots.Occupied)
	assert.Equal(t, domain.LotStatusAvailable, lots.updatedStatus)
}

func TestExecute_CheckoutBeforeCheckin(t *testing.T) {
	// Бронирование ещё confirmed: check-in не было
	booking := activeBooking()
	booking.Status = domain.StatusConfirmed
	booking.CheckIn = domain.CheckRecord{}

	bookings := &fakeBookingRepo{booking: booking}
	lots := &fakeLotRepo{lot: testLot()}

	uc := newTestUseCase(bookings, lots, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotActive)
	assert.Nil(t, bookings.checkedOutAt)
	assert.Nil(t, lots.updatedSlots)
}

func TestExecute_DoubleCheckoutRejected(t *testing.T) {
	booking := activeBooking()
	booking.Status = domain.StatusCompleted

	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeLotRepo{lot: testLot()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{err: bookingRepo.ErrBookingNotFound}

	uc := newTestUseCase(bookings, &fakeLotRepo{lot: testLot()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: activeBooking()}, &fakeLotRepo{lot: testLot()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SerializationConflict(t *testing.T) {
	tx := &fakeTxManager{err: txmanager.ErrSerialization}

	uc := newTestUseCase(&fakeBookingRepo{booking: activeBooking()}, &fakeLotRepo{lot: testLot()}, tx)

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrContention)
}
