package checkout_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

// UseCase use case для check-out с парковки
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет check-out: завершает активное бронирование и освобождает
// место на парковке в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	uc.logger.Info("CheckoutBooking: booking=%d", bookingID)

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
			uc.logger.Error("CheckoutBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Check-out возможен только после check-in
		if !booking.Status.CanTransitionTo(domain.StatusCompleted) {
			uc.logger.Warn("CheckoutBooking: booking id=%d is %s, not active", booking.ID, booking.Status)
			return ErrNotActive
		}

		if err := uc.bookingRepo.CheckOut(txCtx, booking.ID, now); err != nil {
			uc.logger.Error("CheckoutBooking: failed to check out booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to check out: %v", ErrInternal, err)
		}

		lot, err := uc.lotRepo.GetByID(txCtx, booking.LotID)
		if err != nil {
			uc.logger.Error("CheckoutBooking: failed to get lot id=%d: %v", booking.LotID, err)
			return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
		}

		if err := lot.Slots.Release(); err != nil {
			uc.logger.Error("CheckoutBooking: slot counters corrupt for lot id=%d: %v", lot.ID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		lot.DeriveStatus()

		if err := uc.lotRepo.UpdateSlots(txCtx, lot.ID, lot.Slots, lot.Status); err != nil {
			uc.logger.Error("CheckoutBooking: failed to update lot slots id=%d: %v", lot.ID, err)
			return fmt.Errorf("%w: failed to update lot slots: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCompleted
		booking.CheckOut = domain.CheckRecord{Time: &now, Verified: true}

		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CheckoutBooking: serialization conflict for booking=%d", bookingID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("CheckoutBooking: booking id=%d completed", result.ID)

	return result, nil
}
