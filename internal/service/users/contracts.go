package users

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name *string, phone *string, profileImage *string) error
	UpdateWalletBalance(ctx context.Context, id int64, balance float64) error
	InsertWalletTransaction(ctx context.Context, userID int64, txn *domain.WalletTransaction) error
	GetWalletTransactions(ctx context.Context, userID int64) ([]domain.WalletTransaction, error)
	InsertVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, userID int64) ([]domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID, vehicleID int64) error
	InsertSavedPlace(ctx context.Context, p *domain.SavedPlace) (*domain.SavedPlace, error)
	ListSavedPlaces(ctx context.Context, userID int64) ([]domain.SavedPlace, error)
	DeleteSavedPlace(ctx context.Context, userID, placeID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
