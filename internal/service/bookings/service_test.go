package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
)

type fakeBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeLotRepo struct {
	lot   *domain.ParkingLot
	err   error
	calls int
}

func (f *fakeLotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lot, nil
}

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		UserID: 42,
		LotID:  7,
		Status: domain.StatusConfirmed,
	}
}

func testLot() *domain.ParkingLot {
	return &domain.ParkingLot{ID: 7, Name: "Central Plaza"}
}

func TestGetByID(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{booking: testBooking(5)},
		&fakeLotRepo{lot: testLot()},
		&fakeUserRepo{user: &domain.User{ID: 42, Name: "Asha"}},
		nopLogger{},
	)

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	require.NotNil(t, resp.ParkingLot)
	assert.Equal(t, "Central Plaza", resp.ParkingLot.Name)
	require.NotNil(t, resp.Driver)
	assert.Equal(t, "Asha", resp.Driver.Name)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{err: bookingRepo.ErrBookingNotFound},
		&fakeLotRepo{lot: testLot()},
		&fakeUserRepo{},
		nopLogger{},
	)

	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_DeletedLotAndDriverOmitted(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{booking: testBooking(5)},
		&fakeLotRepo{err: lotRepo.ErrLotNotFound},
		&fakeUserRepo{err: userRepo.ErrUserNotFound},
		nopLogger{},
	)

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, resp.ParkingLot)
	assert.Nil(t, resp.Driver)
}

func TestGetByID_SummaryLookupFailureDegrades(t *testing.T) {
	// Сводки декоративные: сбой их загрузки не валит чтение бронирования
	svc := NewService(
		&fakeBookingRepo{booking: testBooking(5)},
		&fakeLotRepo{err: errors.New("connection refused")},
		&fakeUserRepo{err: errors.New("connection refused")},
		nopLogger{},
	)

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Nil(t, resp.ParkingLot)
	assert.Nil(t, resp.Driver)
}

func TestGetUserBookings(t *testing.T) {
	lots := &fakeLotRepo{lot: testLot()}
	svc := NewService(
		&fakeBookingRepo{bookings: []*domain.Booking{testBooking(5), testBooking(6)}},
		lots,
		&fakeUserRepo{},
		nopLogger{},
	)

	resp, err := svc.GetUserBookings(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	// Обе брони на одной парковке, её сводка загружается один раз
	assert.Equal(t, 1, lots.calls)
}

func TestGetUserBookings_InvalidUserID(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeLotRepo{}, &fakeUserRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_LotLookupFailureDegrades(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{bookings: []*domain.Booking{testBooking(5)}},
		&fakeLotRepo{err: errors.New("connection refused")},
		&fakeUserRepo{},
		nopLogger{},
	)

	resp, err := svc.GetUserBookings(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Nil(t, resp.Bookings[0].ParkingLot)
}
