package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	createBooking "github.com/m04kA/ParkEase-Backend/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgLotNotFound        = "парковка не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgNoAvailableSlots   = "на парковке нет свободных мест"
	msgInsufficientFunds  = "недостаточно средств в кошельке"
	msgLotClosed          = "парковка закрыта"
	msgVehicleNotAllowed  = "парковка не принимает этот тип транспорта"
	msgContention         = "слишком много одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "Access token required")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(claims.UserID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrLotNotFound):
			h.logger.Warn("POST /bookings - Lot not found: lot_id=%d", req.ParkingLotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", claims.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrNoAvailableSlots):
			h.logger.Warn("POST /bookings - No available slots: lot_id=%d", req.ParkingLotID)
			handlers.RespondBadRequest(w, msgNoAvailableSlots)

		case errors.Is(err, createBooking.ErrInsufficientFunds):
			h.logger.Warn("POST /bookings - Insufficient funds: user_id=%d", claims.UserID)
			handlers.RespondBadRequest(w, msgInsufficientFunds)

		case errors.Is(err, createBooking.ErrLotClosed):
			h.logger.Warn("POST /bookings - Lot closed: lot_id=%d", req.ParkingLotID)
			handlers.RespondBadRequest(w, msgLotClosed)

		case errors.Is(err, createBooking.ErrVehicleTypeNotSupported):
			h.logger.Warn("POST /bookings - Vehicle type not supported: lot_id=%d", req.ParkingLotID)
			handlers.RespondBadRequest(w, msgVehicleNotAllowed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrContention):
			h.logger.Warn("POST /bookings - Contention: user_id=%d, lot_id=%d", claims.UserID, req.ParkingLotID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, lot_id=%d, error=%v",
				claims.UserID, req.ParkingLotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, lot_id=%d",
		result.Booking.ID, claims.UserID, req.ParkingLotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
