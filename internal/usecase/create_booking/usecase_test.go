package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *b
	created.ID = 1
	f.created = &created
	return &created, nil
}

type fakeLotRepo struct {
	lot *domain.ParkingLot
	err error

	updatedSlots  *domain.SlotCounters
	updatedStatus domain.LotStatus
}

func (f *fakeLotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lot, nil
}

func (f *fakeLotRepo) UpdateSlots(_ context.Context, _ int64, slots domain.SlotCounters, status domain.LotStatus) error {
	f.updatedSlots = &slots
	f.updatedStatus = status
	return nil
}

type fakeUserRepo struct {
	user *domain.User
	err  error

	updatedBalance *float64
	insertedTxn    *domain.WalletTransaction
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
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

func testLot() *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:         7,
		ProviderID: 2,
		Name:       "Central Plaza",
		Address:    "MG Road 1",
		Location:   domain.Location{Latitude: 12.97, Longitude: 77.59},
		HourlyRate: 25,
		Currency:   domain.DefaultCurrency,
		Slots:      domain.SlotCounters{Total: 10, Available: 3, Occupied: 7},
		Status:     domain.LotStatusAvailable,
	}
}

func testDriver() *domain.User {
	return &domain.User{
		ID:            42,
		Name:          "Asha",
		Email:         "asha@example.com",
		Role:          domain.RoleDriver,
		Status:        domain.UserStatusActive,
		WalletBalance: 100,
	}
}

func testRequest() *Request {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &Request{
		UserID:      42,
		LotID:       7,
		VehicleType: "car",
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		TotalAmount: 50,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, lots *fakeLotRepo, users *fakeUserRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, lots, users, tx, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	lots := &fakeLotRepo{lot: testLot()}
	users := &fakeUserRepo{user: testDriver()}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	booking := resp.Booking
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, domain.PaymentPaid, booking.PaymentStatus)
	assert.Equal(t, float64(25), booking.HourlyRate)
	assert.Equal(t, float64(50), booking.TotalAmount)
	assert.Equal(t, 2, booking.Duration.Hours)
	assert.Equal(t, 0, booking.Duration.Minutes)
	assert.True(t, strings.HasPrefix(booking.QRCode, "QR-"))
	assert.True(t, strings.HasSuffix(booking.QRCode, "-42"))

	// Место занято, счетчики сохранены
	require.NotNil(t, lots.updatedSlots)
	assert.Equal(t, 2, lots.updatedSlots.Available)
	assert.Equal(t, 8, lots.updatedSlots.Occupied)
	assert.Equal(t, domain.LotStatusAvailable, lots.updatedStatus)

	// Кошелёк списан, запись журнала добавлена
	require.NotNil(t, users.updatedBalance)
	assert.Equal(t, float64(50), *users.updatedBalance)
	require.NotNil(t, users.insertedTxn)
	assert.Equal(t, domain.TransactionDebit, users.insertedTxn.Kind)
	assert.Equal(t, "Parking booking at Central Plaza", users.insertedTxn.Description)

	assert.Equal(t, "Central Plaza", resp.Lot.Name)
	assert.Equal(t, "Asha", resp.Driver.Name)
}

func TestExecute_LastSlotMakesLotFull(t *testing.T) {
	lot := testLot()
	lot.Slots = domain.SlotCounters{Total: 10, Available: 1, Occupied: 9}

	lots := &fakeLotRepo{lot: lot}
	uc := newTestUseCase(&fakeBookingRepo{}, lots, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, lots.updatedSlots.Available)
	assert.Equal(t, domain.LotStatusFull, lots.updatedStatus)
}

func TestExecute_InsufficientFunds(t *testing.T) {
	driver := testDriver()
	driver.WalletBalance = 20

	bookings := &fakeBookingRepo{}
	lots := &fakeLotRepo{lot: testLot()}
	users := &fakeUserRepo{user: driver}

	uc := newTestUseCase(bookings, lots, users, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Nil(t, bookings.created)
	assert.Nil(t, lots.updatedSlots)
	assert.Nil(t, users.updatedBalance)
}

func TestExecute_NoAvailableSlots(t *testing.T) {
	lot := testLot()
	lot.Slots = domain.SlotCounters{Total: 10, Available: 0, Occupied: 10}
	lot.Status = domain.LotStatusFull

	bookings := &fakeBookingRepo{}
	lots := &fakeLotRepo{lot: lot}

	uc := newTestUseCase(bookings, lots, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrNoAvailableSlots)
	assert.Nil(t, bookings.created)
	assert.Nil(t, lots.updatedSlots)
}

func TestExecute_LotClosed(t *testing.T) {
	lot := testLot()
	lot.Status = domain.LotStatusClosed

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLotRepo{lot: lot}, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrLotClosed)
}

func TestExecute_VehicleTypeNotSupported(t *testing.T) {
	lot := testLot()
	lot.VehicleTypes = []string{"bike"}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLotRepo{lot: lot}, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrVehicleTypeNotSupported)
}

func TestExecute_LotNotFound(t *testing.T) {
	lots := &fakeLotRepo{err: lotRepo.ErrLotNotFound}

	uc := newTestUseCase(&fakeBookingRepo{}, lots, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	users := &fakeUserRepo{err: userRepo.ErrUserNotFound}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLotRepo{lot: testLot()}, users, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLotRepo{lot: testLot()}, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	t.Run("end before start", func(t *testing.T) {
		req := testRequest()
		req.EndTime = req.StartTime.Add(-time.Hour)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		req := testRequest()
		req.TotalAmount = 0

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown vehicle type", func(t *testing.T) {
		req := testRequest()
		req.VehicleType = "submarine"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_SerializationConflict(t *testing.T) {
	tx := &fakeTxManager{err: txmanager.ErrSerialization}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeLotRepo{lot: testLot()}, &fakeUserRepo{user: testDriver()}, tx)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrContention)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	bookings := &fakeBookingRepo{err: errors.New("connection reset")}

	uc := newTestUseCase(bookings, &fakeLotRepo{lot: testLot()}, &fakeUserRepo{user: testDriver()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
