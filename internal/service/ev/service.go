package ev

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	evRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/evstation"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/ev/models"
)

// Service сервис для работы со станциями зарядки
type Service struct {
	stationRepo StationRepository
	lotRepo     LotRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса станций зарядки
func NewService(stationRepo StationRepository, lotRepo LotRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		stationRepo: stationRepo,
		lotRepo:     lotRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ListAll получает все станции зарядки, сгруппированные по парковкам
func (s *Service) ListAll(ctx context.Context) (*models.AllStationsResponse, error) {
	stations, err := s.stationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	byLot := make(map[int64][]*domain.EVStation)
	order := make([]int64, 0)
	for _, st := range stations {
		if _, seen := byLot[st.LotID]; !seen {
			order = append(order, st.LotID)
		}
		byLot[st.LotID] = append(byLot[st.LotID], st)
	}

	groups := make([]*models.LotStations, 0, len(order))
	for _, lotID := range order {
		lot, err := s.lotRepo.GetByID(ctx, lotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				continue
			}
			s.logger.Error("ListAll: failed to get lot id=%d: %v", lotID, err)
			return nil, fmt.Errorf("%w: ListAll - lot lookup: %v", ErrInternal, err)
		}

		group := &models.LotStations{
			ParkingLotID:   lot.ID,
			ParkingLotName: lot.Name,
			Address:        lot.Address,
			Latitude:       lot.Location.Latitude,
			Longitude:      lot.Location.Longitude,
			Stations:       models.FromDomainStations(byLot[lotID]),
		}

		if provider, err := s.userRepo.GetByID(ctx, lot.ProviderID); err == nil {
			group.Provider = &models.ProviderSummary{
				ID:    provider.ID,
				Name:  provider.Name,
				Email: provider.Email,
				Phone: provider.Phone,
			}
		} else if !errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Error("ListAll: failed to get provider id=%d: %v", lot.ProviderID, err)
			return nil, fmt.Errorf("%w: ListAll - provider lookup: %v", ErrInternal, err)
		}

		groups = append(groups, group)
	}

	return &models.AllStationsResponse{EVStations: groups, Count: len(groups)}, nil
}

// ListByLot получает станции зарядки парковки
func (s *Service) ListByLot(ctx context.Context, lotID int64) (*models.LotStationsResponse, error) {
	lot, err := s.getLot(ctx, lotID, "ListByLot")
	if err != nil {
		return nil, err
	}

	stations, err := s.stationRepo.ListByLotID(ctx, lotID)
	if err != nil {
		s.logger.Error("ListByLot: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: ListByLot - repository error: %v", ErrInternal, err)
	}

	if len(stations) == 0 {
		return nil, ErrNoCharging
	}

	return &models.LotStationsResponse{
		ParkingLotName: lot.Name,
		Stations:       models.FromDomainStations(stations),
	}, nil
}

// Add добавляет станцию зарядки. Разрешено только владельцу парковки.
func (s *Service) Add(ctx context.Context, lotID int64, providerID int64, req *models.AddStationRequest) ([]*models.StationResponse, error) {
	s.logger.Info("Add: lot=%d, station=%s, provider=%d", lotID, req.ID, providerID)

	lot, err := s.getLot(ctx, lotID, "Add")
	if err != nil {
		return nil, err
	}

	if lot.ProviderID != providerID {
		s.logger.Warn("Add: user=%d is not the owner of lot id=%d", providerID, lotID)
		return nil, ErrAccessDenied
	}

	if req.VehicleType != nil && !domain.ValidVehicleType(*req.VehicleType) {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, *req.VehicleType)
	}

	station := &domain.EVStation{
		StationID:   req.ID,
		LotID:       lotID,
		Status:      domain.EVStationAvailable,
		VehicleType: req.VehicleType,
	}

	if _, err := s.stationRepo.Insert(ctx, station); err != nil {
		if errors.Is(err, evRepo.ErrStationExists) {
			return nil, ErrStationExists
		}
		s.logger.Error("Add: repository error for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	stations, err := s.stationRepo.ListByLotID(ctx, lotID)
	if err != nil {
		s.logger.Error("Add: failed to list stations for lot id=%d: %v", lotID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: station %s added to lot id=%d", req.ID, lotID)
	return models.FromDomainStations(stations), nil
}

// Update обновляет статус и занятость станции
func (s *Service) Update(ctx context.Context, lotID int64, stationID string, req *models.UpdateStationRequest) (*models.StationResponse, error) {
	if _, err := s.getLot(ctx, lotID, "Update"); err != nil {
		return nil, err
	}

	var status *domain.EVStationStatus
	if req.Status != nil {
		st := domain.EVStationStatus(*req.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown station status %q", ErrInvalidInput, *req.Status)
		}
		status = &st
	}

	err := s.stationRepo.Update(ctx, lotID, stationID, status, req.CurrentVehiclePlate, req.TimeRemaining)
	if err != nil {
		if errors.Is(err, evRepo.ErrStationNotFound) {
			return nil, ErrStationNotFound
		}
		s.logger.Error("Update: repository error for lot=%d station=%s: %v", lotID, stationID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	station, err := s.stationRepo.Get(ctx, lotID, stationID)
	if err != nil {
		s.logger.Error("Update: failed to reload station lot=%d station=%s: %v", lotID, stationID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: station %s at lot id=%d updated", stationID, lotID)
	return models.FromDomainStation(station), nil
}

// Delete удаляет станцию зарядки. Разрешено только владельцу парковки.
func (s *Service) Delete(ctx context.Context, lotID int64, stationID string, providerID int64) error {
	lot, err := s.getLot(ctx, lotID, "Delete")
	if err != nil {
		return err
	}

	if lot.ProviderID != providerID {
		s.logger.Warn("Delete: user=%d is not the owner of lot id=%d", providerID, lotID)
		return ErrAccessDenied
	}

	if err := s.stationRepo.Delete(ctx, lotID, stationID); err != nil {
		if errors.Is(err, evRepo.ErrStationNotFound) {
			return ErrStationNotFound
		}
		s.logger.Error("Delete: repository error for lot=%d station=%s: %v", lotID, stationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: station %s removed from lot id=%d", stationID, lotID)
	return nil
}

func (s *Service) getLot(ctx context.Context, lotID int64, op string) (*domain.ParkingLot, error) {
	lot, err := s.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("%s: lot id=%d not found", op, lotID)
			return nil, ErrLotNotFound
		}
		s.logger.Error("%s: repository error for lot id=%d: %v", op, lotID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lot, nil
}
