package checkin_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	bookingModels "github.com/m04kA/ParkEase-Backend/internal/service/bookings/models"
	checkinBooking "github.com/m04kA/ParkEase-Backend/internal/usecase/checkin_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgNotConfirmed     = "check-in доступен только для подтверждённого бронирования"
	msgContention       = "слишком много одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase CheckinUseCase
	logger  Logger
}

func NewHandler(useCase CheckinUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type response struct {
	Message string                         `json:"message"`
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// Handle POST /api/bookings/{bookingId}/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, checkinBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/checkin - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkinBooking.ErrNotConfirmed):
			h.logger.Warn("POST /bookings/{id}/checkin - Not confirmed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, checkinBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, checkinBooking.ErrContention):
			h.logger.Warn("POST /bookings/{id}/checkin - Contention: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /bookings/{id}/checkin - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response{
		Message: "Check-in successful",
		Booking: bookingModels.FromDomainBooking(booking),
	})
}
