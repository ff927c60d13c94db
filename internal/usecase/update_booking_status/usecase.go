package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

const refundDescription = "Refund for cancelled booking"

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	lotRepo      LotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		lotRepo:      lotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет смену статуса бронирования.
// Переход проверяется по таблице переходов; отмена дополнительно возвращает
// деньги в кошелёк и освобождает место — всё в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, newStatus=%s", req.BookingID, req.NewStatus)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	newStatus := domain.BookingStatus(req.NewStatus)
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Бронирование с блокировкой строки (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Таблица переходов отсекает и повторную отмену: из cancelled
		// переходов нет, значит повторный возврат средств невозможен.
		if !booking.Status.CanTransitionTo(newStatus) {
			uc.logger.Warn("UpdateBookingStatus: illegal transition %s -> %s for booking id=%d",
				booking.Status, newStatus, booking.ID)
			return ErrInvalidTransition
		}

		switch newStatus {
		case domain.StatusCancelled:
			if err := uc.cancelWithRefund(txCtx, booking); err != nil {
				return err
			}
			booking.Status = domain.StatusCancelled
			booking.PaymentStatus = domain.PaymentRefunded
			booking.CancelledAt = &now

		case domain.StatusCompleted:
			// Завершение без check-out всё равно освобождает место
			if err := uc.releaseSlot(txCtx, booking.LotID); err != nil {
				return err
			}
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to update status id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
			booking.Status = newStatus

		default:
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to update status id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
			booking.Status = newStatus
		}

		result = &Response{Booking: booking}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateBookingStatus: serialization conflict for booking=%d", req.BookingID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d is now %s", result.Booking.ID, result.Booking.Status)

	return result, nil
}

// cancelWithRefund возвращает полную стоимость в кошелёк, освобождает место
// и помечает бронирование отменённым с возвратом оплаты
func (uc *UseCase) cancelWithRefund(ctx context.Context, booking *domain.Booking) error {
	user, err := uc.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get user id=%d: %v", booking.UserID, err)
		return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	wallet := domain.Wallet{Balance: user.WalletBalance}
	credit, err := wallet.Credit(booking.TotalAmount, refundDescription)
	if err != nil {
		return fmt.Errorf("%w: failed to credit wallet: %v", ErrInternal, err)
	}

	if err := uc.releaseSlot(ctx, booking.LotID); err != nil {
		return err
	}

	if err := uc.userRepo.UpdateWalletBalance(ctx, user.ID, wallet.Balance); err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to update wallet balance user=%d: %v", user.ID, err)
		return fmt.Errorf("%w: failed to update wallet balance: %v", ErrInternal, err)
	}
	if err := uc.userRepo.InsertWalletTransaction(ctx, user.ID, credit); err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to insert wallet transaction user=%d: %v", user.ID, err)
		return fmt.Errorf("%w: failed to insert wallet transaction: %v", ErrInternal, err)
	}

	if err := uc.bookingRepo.Cancel(ctx, booking.ID); err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to cancel booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	return nil
}

// releaseSlot освобождает одно место на парковке и пересчитывает её статус
func (uc *UseCase) releaseSlot(ctx context.Context, lotID int64) error {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get lot id=%d: %v", lotID, err)
		return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
	}

	if err := lot.Slots.Release(); err != nil {
		uc.logger.Error("UpdateBookingStatus: slot counters corrupt for lot id=%d: %v", lotID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	lot.DeriveStatus()

	if err := uc.lotRepo.UpdateSlots(ctx, lot.ID, lot.Slots, lot.Status); err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to update lot slots id=%d: %v", lot.ID, err)
		return fmt.Errorf("%w: failed to update lot slots: %v", ErrInternal, err)
	}

	return nil
}
