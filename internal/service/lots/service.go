package lots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

// Service сервис для работы с парковками
type Service struct {
	lotRepo         LotRepository
	userRepo        UserRepository
	defaultRadiusKm float64
	logger          Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(lotRepo LotRepository, userRepo UserRepository, defaultRadiusKm float64, logger Logger) *Service {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = domain.DefaultSearchRadiusKm
	}
	return &Service{
		lotRepo:         lotRepo,
		userRepo:        userRepo,
		defaultRadiusKm: defaultRadiusKm,
		logger:          logger,
	}
}

// List получает парковки с фильтрацией по статусу и по радиусу от точки.
// Статус фильтруется в запросе, гео-фильтр применяется после выборки.
func (s *Service) List(ctx context.Context, req *models.ListLotsRequest) (*models.LotListResponse, error) {
	var status *domain.LotStatus
	if req.Status != nil {
		st := domain.LotStatus(*req.Status)
		status = &st
	}

	lots, err := s.lotRepo.List(ctx, status)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if req.Latitude != nil && req.Longitude != nil {
		center := domain.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
		radius := s.defaultRadiusKm
		if req.RadiusKm != nil && *req.RadiusKm > 0 {
			radius = *req.RadiusKm
		}

		filtered := lots[:0]
		for _, lot := range lots {
			if lot.Location.WithinRadiusKm(center, radius) {
				filtered = append(filtered, lot)
			}
		}
		lots = filtered
	}

	return s.toListResponse(ctx, lots)
}

// GetByID получает парковку по ID вместе с данными провайдера
func (s *Service) GetByID(ctx context.Context, id int64) (*models.LotResponse, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			s.logger.Warn("GetByID: lot id=%d not found", id)
			return nil, ErrLotNotFound
		}
		s.logger.Error("GetByID: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainLot(lot)
	s.attachProvider(ctx, resp)

	return resp, nil
}

// Create создает парковку для провайдера.
// Все места изначально свободны: available = total, occupied = 0.
func (s *Service) Create(ctx context.Context, providerID int64, req *models.CreateLotRequest) (*models.LotResponse, error) {
	s.logger.Info("Create: provider=%d, name=%s, totalSlots=%d", providerID, req.Name, req.TotalSlots)

	for _, vt := range req.VehicleTypes {
		if !domain.ValidVehicleType(vt) {
			return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, vt)
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	lot := &domain.ParkingLot{
		ProviderID: providerID,
		Name:       req.Name,
		Address:    req.Address,
		Location: domain.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		HourlyRate: req.HourlyRate,
		Currency:   currency,
		Slots: domain.SlotCounters{
			Total:     req.TotalSlots,
			Available: req.TotalSlots,
			Occupied:  0,
		},
		Status:       domain.LotStatusAvailable,
		VehicleTypes: req.VehicleTypes,
		Amenities:    req.Amenities,
	}
	lot.DeriveStatus()

	if !lot.Slots.Valid() {
		return nil, fmt.Errorf("%w: invalid slot counters", ErrInvalidInput)
	}

	created, err := s.lotRepo.Create(ctx, lot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: lot id=%d created for provider=%d", created.ID, providerID)
	return models.FromDomainLot(created), nil
}

// Update обновляет парковку. Разрешено владельцу и админу.
// Счетчики мест этим методом не меняются, ими управляют бронирования.
func (s *Service) Update(ctx context.Context, id int64, requesterID int64, requesterRole domain.Role, req *models.UpdateLotRequest) (*models.LotResponse, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return nil, ErrLotNotFound
		}
		s.logger.Error("Update: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(lot, requesterID, requesterRole); err != nil {
		s.logger.Warn("Update: access denied for user=%d to lot id=%d", requesterID, id)
		return nil, err
	}

	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Address != nil {
		lot.Address = *req.Address
	}
	if req.Location != nil {
		lot.Location = domain.Location{Latitude: req.Location.Latitude, Longitude: req.Location.Longitude}
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, fmt.Errorf("%w: hourlyRate must be positive", ErrInvalidInput)
		}
		lot.HourlyRate = *req.HourlyRate
	}
	if req.Currency != nil {
		lot.Currency = *req.Currency
	}
	if req.Status != nil {
		status := domain.LotStatus(*req.Status)
		if status != domain.LotStatusAvailable && status != domain.LotStatusFull && status != domain.LotStatusClosed {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		lot.Status = status
	}
	if req.VehicleTypes != nil {
		for _, vt := range req.VehicleTypes {
			if !domain.ValidVehicleType(vt) {
				return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, vt)
			}
		}
		lot.VehicleTypes = req.VehicleTypes
	}
	if req.Amenities != nil {
		lot.Amenities = req.Amenities
	}

	// Закрытую вручную парковку статусная логика не трогает
	if !lot.IsClosed() {
		lot.DeriveStatus()
	}

	if err := s.lotRepo.Update(ctx, lot); err != nil {
		s.logger.Error("Update: repository error for lot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: lot id=%d updated by user=%d", id, requesterID)
	return models.FromDomainLot(lot), nil
}

// Delete удаляет парковку. Разрешено владельцу и админу.
func (s *Service) Delete(ctx context.Context, id int64, requesterID int64, requesterRole domain.Role) error {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return ErrLotNotFound
		}
		s.logger.Error("Delete: repository error for lot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(lot, requesterID, requesterRole); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to lot id=%d", requesterID, id)
		return err
	}

	if err := s.lotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, lotRepo.ErrLotNotFound) {
			return ErrLotNotFound
		}
		s.logger.Error("Delete: repository error for lot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: lot id=%d deleted by user=%d", id, requesterID)
	return nil
}

// GetByProvider получает парковки провайдера
func (s *Service) GetByProvider(ctx context.Context, providerID int64) (*models.LotListResponse, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	lots, err := s.lotRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		s.logger.Error("GetByProvider: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByProvider - repository error: %v", ErrInternal, err)
	}

	responses := make([]*models.LotResponse, 0, len(lots))
	for _, lot := range lots {
		responses = append(responses, models.FromDomainLot(lot))
	}

	return &models.LotListResponse{ParkingLots: responses, Count: len(responses)}, nil
}

func (s *Service) checkOwnerAccess(lot *domain.ParkingLot, requesterID int64, requesterRole domain.Role) error {
	if requesterRole == domain.RoleAdmin {
		return nil
	}
	if lot.ProviderID != requesterID {
		return ErrAccessDenied
	}
	return nil
}

// toListResponse конвертирует список парковок, подтягивая провайдеров без дублей
func (s *Service) toListResponse(ctx context.Context, lots []*domain.ParkingLot) (*models.LotListResponse, error) {
	providerCache := make(map[int64]*models.ProviderSummary)

	responses := make([]*models.LotResponse, 0, len(lots))
	for _, lot := range lots {
		resp := models.FromDomainLot(lot)

		// Сводка по провайдеру декоративная: при недоступности отдаем
		// парковку без неё
		summary, ok := providerCache[lot.ProviderID]
		if !ok {
			if user, err := s.userRepo.GetByID(ctx, lot.ProviderID); err == nil {
				summary = models.FromDomainUser(user)
			} else if !errors.Is(err, userRepo.ErrUserNotFound) {
				s.logger.Error("List: failed to get provider id=%d: %v", lot.ProviderID, err)
			}
			providerCache[lot.ProviderID] = summary
		}
		resp.Provider = summary

		responses = append(responses, resp)
	}

	return &models.LotListResponse{ParkingLots: responses, Count: len(responses)}, nil
}

func (s *Service) attachProvider(ctx context.Context, resp *models.LotResponse) {
	user, err := s.userRepo.GetByID(ctx, resp.ProviderID)
	if err != nil {
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Error("attachProvider: failed to get provider id=%d: %v", resp.ProviderID, err)
		}
		return
	}
	resp.Provider = models.FromDomainUser(user)
}
