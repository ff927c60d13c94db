package lots

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	Create(ctx context.Context, l *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	List(ctx context.Context, status *domain.LotStatus) ([]*domain.ParkingLot, error)
	GetByProviderID(ctx context.Context, providerID int64) ([]*domain.ParkingLot, error)
	Update(ctx context.Context, l *domain.ParkingLot) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository интерфейс репозитория пользователей (данные провайдера)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
