package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/booking"
	lotRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/lot"
	userRepo "github.com/m04kA/ParkEase-Backend/internal/infra/storage/user"
	"github.com/m04kA/ParkEase-Backend/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	lotRepo     LotRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	lotRepo LotRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		lotRepo:     lotRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с данными парковки и водителя
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking)

	// Сводки по парковке и водителю декоративные: при недоступности или
	// удалении отдаем бронирование без них
	if lot, err := s.lotRepo.GetByID(ctx, booking.LotID); err == nil {
		resp.ParkingLot = models.FromDomainLot(lot)
	} else if !errors.Is(err, lotRepo.ErrLotNotFound) {
		s.logger.Error("GetByID: failed to get lot id=%d: %v", booking.LotID, err)
	}

	if user, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil {
		resp.Driver = models.FromDomainUser(user)
	} else if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("GetByID: failed to get user id=%d: %v", booking.UserID, err)
	}

	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	// Парковки подтягиваем один раз на каждую, а не на каждое бронирование
	lotCache := make(map[int64]*models.LotSummary)

	responses := make([]*models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp := models.FromDomainBooking(b)

		summary, ok := lotCache[b.LotID]
		if !ok {
			if lot, err := s.lotRepo.GetByID(ctx, b.LotID); err == nil {
				summary = models.FromDomainLot(lot)
			} else if !errors.Is(err, lotRepo.ErrLotNotFound) {
				s.logger.Error("GetUserBookings: failed to get lot id=%d: %v", b.LotID, err)
			}
			lotCache[b.LotID] = summary
		}
		resp.ParkingLot = summary

		responses = append(responses, resp)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(responses), userID)
	return &models.BookingListResponse{Bookings: responses, Count: len(responses)}, nil
}
