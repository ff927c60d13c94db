package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/admin/models"
	"github.com/m04kA/ParkEase-Backend/pkg/ptr"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

// Service админский сервис: списки пользователей, модерация, статистика
type Service struct {
	userRepo    UserRepository
	lotRepo     LotRepository
	stationRepo StationRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр админского сервиса
func NewService(
	userRepo UserRepository,
	lotRepo LotRepository,
	stationRepo StationRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		lotRepo:     lotRepo,
		stationRepo: stationRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListUsers получает пользователей с опциональными фильтрами по роли и статусу
func (s *Service) ListUsers(ctx context.Context, req *models.ListUsersRequest) (*models.UserListResponse, error) {
	filter := domain.UserListFilter{}

	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *req.Role)
		}
		filter.Role = &role
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrInternal, err)
	}

	responses := models.FromDomainUsers(users)
	return &models.UserListResponse{Users: responses, Count: len(responses)}, nil
}

// ListDrivers получает всех водителей
func (s *Service) ListDrivers(ctx context.Context) (*models.DriverListResponse, error) {
	users, err := s.userRepo.List(ctx, domain.UserListFilter{Role: ptr.Ptr(domain.RoleDriver)})
	if err != nil {
		s.logger.Error("ListDrivers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDrivers - repository error: %v", ErrInternal, err)
	}

	responses := models.FromDomainUsers(users)
	return &models.DriverListResponse{Drivers: responses, Count: len(responses)}, nil
}

// ListProviders получает провайдеров со счетчиками их парковок и станций
func (s *Service) ListProviders(ctx context.Context) (*models.ProviderListResponse, error) {
	users, err := s.userRepo.List(ctx, domain.UserListFilter{Role: ptr.Ptr(domain.RoleProvider)})
	if err != nil {
		s.logger.Error("ListProviders: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProviders - repository error: %v", ErrInternal, err)
	}

	providers := make([]*models.ProviderResponse, 0, len(users))
	for _, u := range users {
		lotsCount, err := s.lotRepo.CountByProviderID(ctx, u.ID)
		if err != nil {
			s.logger.Error("ListProviders: failed to count lots for provider=%d: %v", u.ID, err)
			return nil, fmt.Errorf("%w: ListProviders - lot count: %v", ErrInternal, err)
		}

		stationsCount, err := s.stationRepo.CountByProviderID(ctx, u.ID)
		if err != nil {
			s.logger.Error("ListProviders: failed to count stations for provider=%d: %v", u.ID, err)
			return nil, fmt.Errorf("%w: ListProviders - station count: %v", ErrInternal, err)
		}

		providers = append(providers, &models.ProviderResponse{
			UserResponse:    *models.FromDomainUser(u),
			LotsCount:       lotsCount,
			EVStationsCount: stationsCount,
		})
	}

	return &models.ProviderListResponse{Providers: providers, Count: len(providers)}, nil
}

// GetUserDetails получает пользователя с деталями по его роли:
// водителю считаются бронирования, провайдеру - парковки
func (s *Service) GetUserDetails(ctx context.Context, id int64) (*models.UserDetailsResponse, error) {
	user, err := s.getUser(ctx, id, "GetUserDetails")
	if err != nil {
		return nil, err
	}

	details := &models.UserDetailsResponse{User: models.FromDomainUser(user)}

	switch user.Role {
	case domain.RoleDriver:
		bookings, err := s.bookingRepo.GetByUserID(ctx, id)
		if err != nil {
			s.logger.Error("GetUserDetails: failed to get bookings for user=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetUserDetails - bookings lookup: %v", ErrInternal, err)
		}
		details.TotalBookings = ptr.Ptr(len(bookings))

	case domain.RoleProvider:
		lots, err := s.lotRepo.GetByProviderID(ctx, id)
		if err != nil {
			s.logger.Error("GetUserDetails: failed to get lots for provider=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetUserDetails - lots lookup: %v", ErrInternal, err)
		}
		details.TotalLots = ptr.Ptr(len(lots))
	}

	return details, nil
}

// SuspendUser приостанавливает аккаунт
func (s *Service) SuspendUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	return s.setStatus(ctx, id, domain.UserStatusSuspended)
}

// ActivateUser активирует аккаунт
func (s *Service) ActivateUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	return s.setStatus(ctx, id, domain.UserStatusActive)
}

// DeleteUser удаляет пользователя. Парковки провайдера удаляются каскадом в
// одной транзакции, бронирования сохраняются как история.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	s.logger.Info("DeleteUser: user=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			s.logger.Error("DeleteUser: failed to get user=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteUser - repository error: %v", ErrInternal, err)
		}

		if user.IsProvider() {
			if err := s.lotRepo.DeleteByProviderID(txCtx, id); err != nil {
				s.logger.Error("DeleteUser: failed to delete lots of provider=%d: %v", id, err)
				return fmt.Errorf("%w: DeleteUser - lot cascade: %v", ErrInternal, err)
			}
		}

		if err := s.userRepo.Delete(txCtx, id); err != nil {
			s.logger.Error("DeleteUser: failed to delete user=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteUser - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("DeleteUser: serialization conflict for user=%d", id)
			return ErrContention
		}
		return err
	}

	s.logger.Info("DeleteUser: user=%d deleted", id)
	return nil
}

// Stats собирает счетчики для админской панели
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - user count: %v", ErrInternal, err)
	}

	totalDrivers, err := s.userRepo.CountByRole(ctx, domain.RoleDriver)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - driver count: %v", ErrInternal, err)
	}

	totalProviders, err := s.userRepo.CountByRole(ctx, domain.RoleProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - provider count: %v", ErrInternal, err)
	}

	totalLots, err := s.lotRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - lot count: %v", ErrInternal, err)
	}

	totalBookings, err := s.bookingRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - booking count: %v", ErrInternal, err)
	}

	activeBookings, err := s.bookingRepo.CountByStatus(ctx, domain.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - active booking count: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		TotalUsers:       totalUsers,
		TotalDrivers:     totalDrivers,
		TotalProviders:   totalProviders,
		TotalParkingLots: totalLots,
		TotalBookings:    totalBookings,
		ActiveBookings:   activeBookings,
	}, nil
}

func (s *Service) setStatus(ctx context.Context, id int64, status domain.UserStatus) (*models.UserResponse, error) {
	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("setStatus: repository error for user=%d: %v", id, err)
		return nil, fmt.Errorf("%w: setStatus - repository error: %v", ErrInternal, err)
	}

	user, err := s.getUser(ctx, id, "setStatus")
	if err != nil {
		return nil, err
	}

	s.logger.Info("setStatus: user=%d is now %s", id, status)
	return models.FromDomainUser(user), nil
}

func (s *Service) getUser(ctx context.Context, id int64, op string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return user, nil
}
