package lots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
	"github.com/m04kA/ParkEase-Backend/pkg/ptr"
)

type fakeLotRepo struct {
	lots    []*domain.ParkingLot
	lot     *domain.ParkingLot
	getErr  error
	created *domain.ParkingLot
	updated *domain.ParkingLot
	deleted bool
}

func (f *fakeLotRepo) Create(_ context.Context, l *domain.ParkingLot) (*domain.ParkingLot, error) {
	created := *l
	created.ID = 1
	f.created = &created
	return &created, nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.lot, nil
}

func (f *fakeLotRepo) List(_ context.Context, status *domain.LotStatus) ([]*domain.ParkingLot, error) {
	if status == nil {
		return f.lots, nil
	}
	filtered := make([]*domain.ParkingLot, 0, len(f.lots))
	for _, lot := range f.lots {
		if lot.Status == *status {
			filtered = append(filtered, lot)
		}
	}
	return filtered, nil
}

func (f *fakeLotRepo) GetByProviderID(_ context.Context, providerID int64) ([]*domain.ParkingLot, error) {
	result := make([]*domain.ParkingLot, 0, len(f.lots))
	for _, lot := range f.lots {
		if lot.ProviderID == providerID {
			result = append(result, lot)
		}
	}
	return result, nil
}

func (f *fakeLotRepo) Update(_ context.Context, l *domain.ParkingLot) error {
	f.updated = l
	return nil
}

func (f *fakeLotRepo) Delete(_ context.Context, _ int64) error {
	f.deleted = true
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
	err   error
	calls int
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Центр Бангалора; near примерно в 1.4 км, far примерно в 290 км
var (
	center = domain.Location{Latitude: 12.9716, Longitude: 77.5946}
	near   = domain.Location{Latitude: 12.9816, Longitude: 77.6046}
	far    = domain.Location{Latitude: 13.0827, Longitude: 80.2707}
)

func makeLot(id, providerID int64, loc domain.Location, status domain.LotStatus) *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:         id,
		ProviderID: providerID,
		Name:       "Lot",
		Location:   loc,
		HourlyRate: 20,
		Currency:   domain.DefaultCurrency,
		Slots:      domain.SlotCounters{Total: 5, Available: 5},
		Status:     status,
	}
}

func newTestService(lots *fakeLotRepo, users *fakeUserRepo) *Service {
	return NewService(lots, users, 0, nopLogger{})
}

func TestList_GeoFilter(t *testing.T) {
	lots := &fakeLotRepo{lots: []*domain.ParkingLot{
		makeLot(1, 2, near, domain.LotStatusAvailable),
		makeLot(2, 2, far, domain.LotStatusAvailable),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{2: {ID: 2, Name: "Provider"}}}

	svc := newTestService(lots, users)

	t.Run("default radius keeps only nearby lots", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListLotsRequest{
			Latitude:  ptr.Ptr(center.Latitude),
			Longitude: ptr.Ptr(center.Longitude),
		})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, int64(1), resp.ParkingLots[0].ID)
	})

	t.Run("wide radius keeps everything", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListLotsRequest{
			Latitude:  ptr.Ptr(center.Latitude),
			Longitude: ptr.Ptr(center.Longitude),
			RadiusKm:  ptr.Ptr(500.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("non-positive radius falls back to default", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListLotsRequest{
			Latitude:  ptr.Ptr(center.Latitude),
			Longitude: ptr.Ptr(center.Longitude),
			RadiusKm:  ptr.Ptr(-1.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("no coordinates means no geo filter", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListLotsRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Count)
	})
}

func TestList_StatusFilter(t *testing.T) {
	lots := &fakeLotRepo{lots: []*domain.ParkingLot{
		makeLot(1, 2, near, domain.LotStatusAvailable),
		makeLot(2, 2, near, domain.LotStatusClosed),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{2: {ID: 2}}}

	svc := newTestService(lots, users)

	resp, err := svc.List(context.Background(), &models.ListLotsRequest{Status: ptr.Ptr("closed")})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "closed", resp.ParkingLots[0].Status)
}

func TestList_ProviderLookupCached(t *testing.T) {
	lots := &fakeLotRepo{lots: []*domain.ParkingLot{
		makeLot(1, 2, near, domain.LotStatusAvailable),
		makeLot(2, 2, near, domain.LotStatusAvailable),
		makeLot(3, 2, near, domain.LotStatusAvailable),
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{2: {ID: 2, Name: "Provider"}}}

	svc := newTestService(lots, users)

	resp, err := svc.List(context.Background(), &models.ListLotsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 1, users.calls)
}

func TestList_ProviderLookupFailureDegrades(t *testing.T) {
	lots := &fakeLotRepo{lots: []*domain.ParkingLot{
		makeLot(1, 2, near, domain.LotStatusAvailable),
	}}
	users := &fakeUserRepo{err: errors.New("connection refused")}

	svc := newTestService(lots, users)

	// Сводка по провайдеру декоративная: сбой её загрузки не валит весь список
	resp, err := svc.List(context.Background(), &models.ListLotsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count)
	assert.Nil(t, resp.ParkingLots[0].Provider)
}

func TestCreate_AllSlotsStartFree(t *testing.T) {
	lots := &fakeLotRepo{}
	svc := newTestService(lots, &fakeUserRepo{})

	resp, err := svc.Create(context.Background(), 2, &models.CreateLotRequest{
		Name:       "New Lot",
		Address:    "MG Road 1",
		Location:   models.LocationInfo{Latitude: 12.97, Longitude: 77.59},
		HourlyRate: 30,
		TotalSlots: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.Slots.Total)
	assert.Equal(t, 8, resp.Slots.Available)
	assert.Equal(t, 0, resp.Slots.Occupied)
	assert.Equal(t, "available", resp.Status)
	assert.Equal(t, domain.DefaultCurrency, resp.Pricing.Currency)
}

func TestCreate_UnknownVehicleType(t *testing.T) {
	svc := newTestService(&fakeLotRepo{}, &fakeUserRepo{})

	_, err := svc.Create(context.Background(), 2, &models.CreateLotRequest{
		Name:         "New Lot",
		Address:      "MG Road 1",
		HourlyRate:   30,
		TotalSlots:   8,
		VehicleTypes: []string{"submarine"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_OwnerAccess(t *testing.T) {
	t.Run("owner can update", func(t *testing.T) {
		lots := &fakeLotRepo{lot: makeLot(1, 2, near, domain.LotStatusAvailable)}
		svc := newTestService(lots, &fakeUserRepo{})

		resp, err := svc.Update(context.Background(), 1, 2, domain.RoleProvider, &models.UpdateLotRequest{
			Name: ptr.Ptr("Renamed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", resp.Name)
		require.NotNil(t, lots.updated)
	})

	t.Run("other provider is denied", func(t *testing.T) {
		lots := &fakeLotRepo{lot: makeLot(1, 2, near, domain.LotStatusAvailable)}
		svc := newTestService(lots, &fakeUserRepo{})

		_, err := svc.Update(context.Background(), 1, 99, domain.RoleProvider, &models.UpdateLotRequest{
			Name: ptr.Ptr("Hijack"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, lots.updated)
	})

	t.Run("admin can update anything", func(t *testing.T) {
		lots := &fakeLotRepo{lot: makeLot(1, 2, near, domain.LotStatusAvailable)}
		svc := newTestService(lots, &fakeUserRepo{})

		_, err := svc.Update(context.Background(), 1, 99, domain.RoleAdmin, &models.UpdateLotRequest{
			Name: ptr.Ptr("Admin edit"),
		})
		assert.NoError(t, err)
	})
}

func TestUpdate_ManualCloseSticks(t *testing.T) {
	lot := makeLot(1, 2, near, domain.LotStatusAvailable)
	lots := &fakeLotRepo{lot: lot}
	svc := newTestService(lots, &fakeUserRepo{})

	resp, err := svc.Update(context.Background(), 1, 2, domain.RoleProvider, &models.UpdateLotRequest{
		Status: ptr.Ptr("closed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "closed", resp.Status)
}

func TestDelete_NotFound(t *testing.T) {
	lots := &fakeLotRepo{getErr: lotRepo.ErrLotNotFound}
	svc := newTestService(lots, &fakeUserRepo{})

	err := svc.Delete(context.Background(), 1, 2, domain.RoleProvider)
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestGetByID_AttachesProvider(t *testing.T) {
	lots := &fakeLotRepo{lot: makeLot(1, 2, near, domain.LotStatusAvailable)}
	users := &fakeUserRepo{users: map[int64]*domain.User{2: {ID: 2, Name: "Provider", Email: "p@example.com"}}}

	svc := newTestService(lots, users)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Provider)
	assert.Equal(t, "Provider", resp.Provider.Name)
}

func TestGetByID_DeletedProviderOmitted(t *testing.T) {
	lots := &fakeLotRepo{lot: makeLot(1, 2, near, domain.LotStatusAvailable)}
	users := &fakeUserRepo{users: map[int64]*domain.User{}}

	svc := newTestService(lots, users)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.Provider)
}
