package checkin_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

// UseCase use case для check-in на парковку
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет check-in: confirmed -> active в одной сериализуемой
// транзакции. Чтение блокирует строку, поэтому параллельная отмена не может
// вклиниться между проверкой статуса и записью.
// Счетчики мест не меняются, место было занято при создании бронирования.
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	uc.logger.Info("CheckinBooking: booking=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckinBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.Status.CanTransitionTo(domain.StatusActive) {
			uc.logger.Warn("CheckinBooking: booking id=%d is %s, not confirmed", booking.ID, booking.Status)
			return ErrNotConfirmed
		}

		if err := uc.bookingRepo.CheckIn(txCtx, booking.ID, now); err != nil {
			uc.logger.Error("CheckinBooking: failed to check in booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to check in: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusActive
		booking.CheckIn = domain.CheckRecord{Time: &now, Verified: true}

		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CheckinBooking: serialization conflict for booking=%d", bookingID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("CheckinBooking: booking id=%d is now active", result.ID)

	return result, nil
}
