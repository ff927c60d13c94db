package admin

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter domain.UserListFilter) ([]*domain.User, error)
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	Delete(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) ([]*domain.ParkingLot, error)
	DeleteByProviderID(ctx context.Context, providerID int64) error
	CountAll(ctx context.Context) (int64, error)
	CountByProviderID(ctx context.Context, providerID int64) (int64, error)
}

// StationRepository интерфейс репозитория станций зарядки
type StationRepository interface {
	CountByProviderID(ctx context.Context, providerID int64) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
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
