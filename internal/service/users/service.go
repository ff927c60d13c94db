package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/users/models"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

const defaultTopUpDescription = "Wallet top-up"

// Service сервис профилей, кошельков, транспорта и сохранённых мест
type Service struct {
	userRepo  UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetProfile получает профиль пользователя
func (s *Service) GetProfile(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id, "GetProfile")
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// UpdateProfile обновляет изменяемые поля профиля
func (s *Service) UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateProfile: user=%d", id)

	if req.Name == nil && req.Phone == nil && req.ProfileImage == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := s.userRepo.UpdateProfile(ctx, id, req.Name, req.Phone, req.ProfileImage); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	user, err := s.getUser(ctx, id, "UpdateProfile")
	if err != nil {
		return nil, err
	}
	return models.FromDomainUser(user), nil
}

// GetWallet получает баланс и журнал операций кошелька
func (s *Service) GetWallet(ctx context.Context, id int64) (*models.WalletResponse, error) {
	user, err := s.getUser(ctx, id, "GetWallet")
	if err != nil {
		return nil, err
	}

	transactions, err := s.userRepo.GetWalletTransactions(ctx, id)
	if err != nil {
		s.logger.Error("GetWallet: failed to get transactions for user=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetWallet - repository error: %v", ErrInternal, err)
	}

	return &models.WalletResponse{
		Balance:      user.WalletBalance,
		Transactions: models.FromDomainTransactions(transactions),
	}, nil
}

// TopUp пополняет кошелёк. Баланс и запись журнала меняются в одной
// сериализуемой транзакции, строка пользователя блокируется.
func (s *Service) TopUp(ctx context.Context, id int64, req *models.TopUpRequest) (*models.WalletResponse, error) {
	s.logger.Info("TopUp: user=%d, amount=%.2f", id, req.Amount)

	description := defaultTopUpDescription
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			s.logger.Error("TopUp: failed to get user=%d: %v", id, err)
			return fmt.Errorf("%w: TopUp - repository error: %v", ErrInternal, err)
		}

		wallet := domain.Wallet{Balance: user.WalletBalance}
		credit, err := wallet.Credit(req.Amount, description)
		if err != nil {
			return ErrInvalidAmount
		}

		if err := s.userRepo.UpdateWalletBalance(txCtx, id, wallet.Balance); err != nil {
			s.logger.Error("TopUp: failed to update balance for user=%d: %v", id, err)
			return fmt.Errorf("%w: TopUp - repository error: %v", ErrInternal, err)
		}
		if err := s.userRepo.InsertWalletTransaction(txCtx, id, credit); err != nil {
			s.logger.Error("TopUp: failed to insert transaction for user=%d: %v", id, err)
			return fmt.Errorf("%w: TopUp - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("TopUp: serialization conflict for user=%d", id)
			return nil, ErrContention
		}
		return nil, err
	}

	s.logger.Info("TopUp: wallet of user=%d credited with %.2f", id, req.Amount)
	return s.GetWallet(ctx, id)
}

// AddVehicle добавляет транспорт пользователя и возвращает обновлённый список
func (s *Service) AddVehicle(ctx context.Context, userID int64, req *models.AddVehicleRequest) ([]*models.VehicleResponse, error) {
	s.logger.Info("AddVehicle: user=%d, plate=%s", userID, req.PlateNumber)

	if _, err := s.getUser(ctx, userID, "AddVehicle"); err != nil {
		return nil, err
	}

	if !domain.ValidVehicleType(req.Type) {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, req.Type)
	}

	vehicle := &domain.Vehicle{
		UserID:      userID,
		VehicleType: req.Type,
		PlateNumber: req.PlateNumber,
		Model:       req.Model,
		IsEV:        req.IsEV,
	}

	if _, err := s.userRepo.InsertVehicle(ctx, vehicle); err != nil {
		s.logger.Error("AddVehicle: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: AddVehicle - repository error: %v", ErrInternal, err)
	}

	return s.listVehicles(ctx, userID)
}

// RemoveVehicle удаляет транспорт пользователя и возвращает обновлённый список
func (s *Service) RemoveVehicle(ctx context.Context, userID, vehicleID int64) ([]*models.VehicleResponse, error) {
	if err := s.userRepo.DeleteVehicle(ctx, userID, vehicleID); err != nil {
		if errors.Is(err, userRepo.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("RemoveVehicle: repository error for user=%d vehicle=%d: %v", userID, vehicleID, err)
		return nil, fmt.Errorf("%w: RemoveVehicle - repository error: %v", ErrInternal, err)
	}

	return s.listVehicles(ctx, userID)
}

// AddPlace добавляет сохранённое место и возвращает обновлённый список
func (s *Service) AddPlace(ctx context.Context, userID int64, req *models.AddPlaceRequest) ([]*models.PlaceResponse, error) {
	if _, err := s.getUser(ctx, userID, "AddPlace"); err != nil {
		return nil, err
	}

	place := &domain.SavedPlace{
		UserID:    userID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if _, err := s.userRepo.InsertSavedPlace(ctx, place); err != nil {
		s.logger.Error("AddPlace: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: AddPlace - repository error: %v", ErrInternal, err)
	}

	return s.listPlaces(ctx, userID)
}

// RemovePlace удаляет сохранённое место и возвращает обновлённый список
func (s *Service) RemovePlace(ctx context.Context, userID, placeID int64) ([]*models.PlaceResponse, error) {
	if err := s.userRepo.DeleteSavedPlace(ctx, userID, placeID); err != nil {
		if errors.Is(err, userRepo.ErrPlaceNotFound) {
			return nil, ErrPlaceNotFound
		}
		s.logger.Error("RemovePlace: repository error for user=%d place=%d: %v", userID, placeID, err)
		return nil, fmt.Errorf("%w: RemovePlace - repository error: %v", ErrInternal, err)
	}

	return s.listPlaces(ctx, userID)
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

func (s *Service) listVehicles(ctx context.Context, userID int64) ([]*models.VehicleResponse, error) {
	vehicles, err := s.userRepo.ListVehicles(ctx, userID)
	if err != nil {
		s.logger.Error("listVehicles: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: listVehicles - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVehicles(vehicles), nil
}

func (s *Service) listPlaces(ctx context.Context, userID int64) ([]*models.PlaceResponse, error) {
	places, err := s.userRepo.ListSavedPlaces(ctx, userID)
	if err != nil {
		s.logger.Error("listPlaces: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: listPlaces - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPlaces(places), nil
}
