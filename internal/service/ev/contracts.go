package ev

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// StationRepository интерфейс репозитория станций зарядки
type StationRepository interface {
	Insert(ctx context.Context, s *domain.EVStation) (*domain.EVStation, error)
	Get(ctx context.Context, lotID int64, stationID string) (*domain.EVStation, error)
	ListByLotID(ctx context.Context, lotID int64) ([]*domain.EVStation, error)
	ListAll(ctx context.Context) ([]*domain.EVStation, error)
	Update(ctx context.Context, lotID int64, stationID string, status *domain.EVStationStatus, currentVehiclePlate *string, timeRemainingMinutes *int) error
	Delete(ctx context.Context, lotID int64, stationID string) error
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
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
