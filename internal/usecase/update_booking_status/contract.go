package update_booking_status

import (
	"context"
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64) error
}

// LotRepository интерфейс репозитория парковок
type LotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	UpdateSlots(ctx context.Context, id int64, slots domain.SlotCounters, status domain.LotStatus) error
}

// UserRepository интерфейс репозитория пользователей (кошелёк водителя)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateWalletBalance(ctx context.Context, id int64, balance float64) error
	InsertWalletTransaction(ctx context.Context, userID int64, txn *domain.WalletTransaction) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
