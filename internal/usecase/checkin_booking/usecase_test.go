package checkin_booking

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

type txMarkerKey struct{}

type fakeBookingRepo struct {
	booking *domain.Booking
	err     error

	readInTx    bool
	wroteInTx   bool
	checkedInAt *time.Time
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, _ int64) (*domain.Booking, error) {
	f.readInTx = ctx.Value(txMarkerKey{}) != nil
	if f.err != nil {
		return nil, f.err
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) CheckIn(ctx context.Context, _ int64, at time.Time) error {
	f.wroteInTx = ctx.Value(txMarkerKey{}) != nil
	f.checkedInAt = &at
	return nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(context.WithValue(ctx, txMarkerKey{}, true))
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var checkinTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, tx, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: checkinTime}
	return uc
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:     5,
		UserID: 42,
		LotID:  7,
		Status: domain.StatusConfirmed,
	}
}

func TestExecute_Checkin(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}

	uc := newTestUseCase(bookings, &fakeTxManager{})

	booking, err := uc.Execute(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, booking.Status)
	assert.True(t, booking.CheckIn.Verified)
	require.NotNil(t, booking.CheckIn.Time)
	assert.Equal(t, checkinTime, *booking.CheckIn.Time)

	require.NotNil(t, bookings.checkedInAt)
	assert.Equal(t, checkinTime, *bookings.checkedInAt)
}

func TestExecute_ReadAndWriteShareTransaction(t *testing.T) {
	// Проверка статуса и запись идут в одной транзакции: строка заблокирована
	// чтением, отмена не может вклиниться между ними
	bookings := &fakeBookingRepo{booking: confirmedBooking()}

	uc := newTestUseCase(bookings, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	require.NoError(t, err)

	assert.True(t, bookings.readInTx)
	assert.True(t, bookings.wroteInTx)
}

func TestExecute_CancelledBookingStaysCancelled(t *testing.T) {
	// Отмененное (с возвратом средств и освобожденным местом) бронирование
	// нельзя вернуть в active
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled

	bookings := &fakeBookingRepo{booking: booking}

	uc := newTestUseCase(bookings, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Nil(t, bookings.checkedInAt)
}

func TestExecute_DoubleCheckinRejected(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusActive

	bookings := &fakeBookingRepo{booking: booking}

	uc := newTestUseCase(bookings, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Nil(t, bookings.checkedInAt)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{err: bookingRepo.ErrBookingNotFound}

	uc := newTestUseCase(bookings, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SerializationConflict(t *testing.T) {
	tx := &fakeTxManager{err: txmanager.ErrSerialization}

	uc := newTestUseCase(&fakeBookingRepo{booking: confirmedBooking()}, tx)

	_, err := uc.Execute(context.Background(), 5)
	assert.ErrorIs(t, err, ErrContention)
}
