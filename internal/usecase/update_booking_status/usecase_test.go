package update_booking_status

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

	updatedStatus *domain.BookingStatus
	cancelled     bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64) error {
	f.cancelled = true
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

type fakeUserRepo struct {
	user *domain.User

	updatedBalance *float64
	insertedTxn    *domain.WalletTransaction
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) UpdateWalletBalance(_ context.Context, _ int64, balance float64) error {
	f.updatedBalance = &balance
	return nil
}

func (f *fakeUserRepo) InsertWalletTransaction(_ context.Context, _ int64, txn *domain.WalletTransaction) error {
	f.insertedTxn = txn
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

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          5,
		UserID:      42,
		LotID:       7,
		TotalAmount: 50,
		Status:      status,
	}
}

func testLot() *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:     7,
		Name:   "Central Plaza",
		Slots:  domain.SlotCounters{Total: 10, Available: 2, Occupied: 8},
		Status: domain.LotStatusAvailable,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, lots *fakeLotRepo, users *fakeUserRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, lots, users, tx, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_CancelRefundsAndReleasesSlot(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	lots := &fakeLotRepo{lot: testLot()}
	users := &fakeUserRepo{user: &domain.User{ID: 42, WalletBalance: 10}}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	assert.Equal(t, domain.PaymentRefunded, resp.Booking.PaymentStatus)
	require.NotNil(t, resp.Booking.CancelledAt)

	assert.True(t, bookings.cancelled)

	// Полная стоимость вернулась в кошелёк
	require.NotNil(t, users.updatedBalance)
	assert.Equal(t, float64(60), *users.updatedBalance)
	require.NotNil(t, users.insertedTxn)
	assert.Equal(t, domain.TransactionCredit, users.insertedTxn.Kind)
	assert.Equal(t, "Refund for cancelled booking", users.insertedTxn.Description)

	// Место освобождено
	require.NotNil(t, lots.updatedSlots)
	assert.Equal(t, 3, lots.updatedSlots.Available)
	assert.Equal(t, 7, lots.updatedSlots.Occupied)
}

func TestExecute_DoubleCancelRejected(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusCancelled)}
	lots := &fakeLotRepo{lot: testLot()}
	users := &fakeUserRepo{user: &domain.User{ID: 42, WalletBalance: 60}}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Повторного возврата средств нет
	assert.Nil(t, users.updatedBalance)
	assert.Nil(t, lots.updatedSlots)
	assert.False(t, bookings.cancelled)
}

func TestExecute_CancelReopensFullLot(t *testing.T) {
	lot := testLot()
	lot.Slots = domain.SlotCounters{Total: 10, Available: 0, Occupied: 10}
	lot.Status = domain.LotStatusFull

	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	lots := &fakeLotRepo{lot: lot}
	users := &fakeUserRepo{user: &domain.User{ID: 42}}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, 1, lots.updatedSlots.Available)
	assert.Equal(t, domain.LotStatusAvailable, lots.updatedStatus)
}

func TestExecute_CompleteReleasesSlot(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusActive)}
	lots := &fakeLotRepo{lot: testLot()}
	users := &fakeUserRepo{user: &domain.User{ID: 42}}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "completed"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, resp.Booking.Status)
	require.NotNil(t, bookings.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *bookings.updatedStatus)

	require.NotNil(t, lots.updatedSlots)
	assert.Equal(t, 3, lots.updatedSlots.Available)

	// Кошелёк не трогаем при завершении
	assert.Nil(t, users.updatedBalance)
}

func TestExecute_ActivateKeepsSlotAndWallet(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	lots := &fakeLotRepo{lot: testLot()}
	users := &fakeUserRepo{user: &domain.User{ID: 42}}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "active"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, resp.Booking.Status)
	assert.Nil(t, lots.updatedSlots)
	assert.Nil(t, users.updatedBalance)
}

func TestExecute_InvalidStatus(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}, &fakeLotRepo{lot: testLot()}, &fakeUserRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "parked"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{err: bookingRepo.ErrBookingNotFound}

	uc := newTestUseCase(bookings, &fakeLotRepo{lot: testLot()}, &fakeUserRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "cancelled"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SerializationConflict(t *testing.T) {
	tx := &fakeTxManager{err: txmanager.ErrSerialization}

	uc := newTestUseCase(&fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}, &fakeLotRepo{lot: testLot()}, &fakeUserRepo{user: &domain.User{ID: 42}}, tx)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, NewStatus: "cancelled"})
	assert.ErrorIs(t, err, ErrContention)
}
