package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/pkg/txmanager"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Бронирование, счетчики мест и кошелёк меняются в одной сериализуемой
// транзакции, чтобы два запроса не заняли последнее место.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, lot=%d, vehicle=%s, amount=%.2f",
		req.UserID, req.LotID, req.VehicleType, req.TotalAmount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *Response

	// 2. Все изменения в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Парковка с блокировкой строки (FOR UPDATE)
		lot, err := uc.lotRepo.GetByID(txCtx, req.LotID)
		if err != nil {
			if errors.Is(err, lotRepo.ErrLotNotFound) {
				return ErrLotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get lot id=%d: %v", req.LotID, err)
			return fmt.Errorf("%w: failed to get lot: %v", ErrInternal, err)
		}

		if lot.IsClosed() {
			return ErrLotClosed
		}

		if !lot.SupportsVehicleType(req.VehicleType) {
			return ErrVehicleTypeNotSupported
		}

		// 2.2. Водитель с блокировкой строки (кошелёк)
		user, err := uc.userRepo.GetByID(txCtx, req.UserID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}

		// 2.3. Списание с кошелька
		wallet := domain.Wallet{Balance: user.WalletBalance}
		debit, err := wallet.Debit(req.TotalAmount, "Parking booking at "+lot.Name)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 2.4. Занимаем место
		if err := lot.Slots.Reserve(); err != nil {
			return ErrNoAvailableSlots
		}
		lot.DeriveStatus()

		// 2.5. Создаем бронирование со снимком цены и транспорта
		booking := &domain.Booking{
			UserID:        req.UserID,
			LotID:         lot.ID,
			VehicleType:   req.VehicleType,
			VehiclePlate:  req.VehiclePlate,
			VehicleModel:  req.VehicleModel,
			SlotNumber:    req.SlotNumber,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Duration:      domain.DurationBetween(req.StartTime, req.EndTime),
			HourlyRate:    lot.HourlyRate,
			TotalAmount:   req.TotalAmount,
			Currency:      lot.Currency,
			Status:        domain.StatusConfirmed,
			PaymentStatus: domain.PaymentPaid,
			QRCode:        fmt.Sprintf("QR-%d-%d", now.UnixMilli(), req.UserID),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.6. Сохраняем счетчики парковки
		if err := uc.lotRepo.UpdateSlots(txCtx, lot.ID, lot.Slots, lot.Status); err != nil {
			uc.logger.Error("CreateBooking: failed to update lot slots id=%d: %v", lot.ID, err)
			return fmt.Errorf("%w: failed to update lot slots: %v", ErrInternal, err)
		}

		// 2.7. Сохраняем баланс и запись журнала кошелька
		if err := uc.userRepo.UpdateWalletBalance(txCtx, user.ID, wallet.Balance); err != nil {
			uc.logger.Error("CreateBooking: failed to update wallet balance user=%d: %v", user.ID, err)
			return fmt.Errorf("%w: failed to update wallet balance: %v", ErrInternal, err)
		}
		if err := uc.userRepo.InsertWalletTransaction(txCtx, user.ID, debit); err != nil {
			uc.logger.Error("CreateBooking: failed to insert wallet transaction user=%d: %v", user.ID, err)
			return fmt.Errorf("%w: failed to insert wallet transaction: %v", ErrInternal, err)
		}

		result = &Response{
			Booking: created,
			Lot: LotSummary{
				ID:        lot.ID,
				Name:      lot.Name,
				Address:   lot.Address,
				Latitude:  lot.Location.Latitude,
				Longitude: lot.Location.Longitude,
			},
			Driver: DriverSummary{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Phone: user.Phone,
			},
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for user=%d, lot=%d", req.UserID, req.LotID)
			return nil, ErrContention
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.Booking.ID)

	return result, nil
}
