package checkout_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	bookingModels "github.com/m04kA/ParkEase-Backend/internal/service/bookings/models"
	checkoutBooking "github.com/m04kA/ParkEase-Backend/internal/usecase/checkout_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgNotActive        = "check-out доступен только после check-in"
	msgContention       = "слишком много одновременных запросов, повторите попытку"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type response struct {
	Message string                         `json:"message"`
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// Handle POST /api/bookings/{bookingId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, checkoutBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/checkout - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkoutBooking.ErrNotActive):
			h.logger.Warn("POST /bookings/{id}/checkout - Not active: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, checkoutBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, checkoutBooking.ErrContention):
			h.logger.Warn("POST /bookings/{id}/checkout - Contention: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /bookings/{id}/checkout - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response{
		Message: "Check-out successful",
		Booking: bookingModels.FromDomainBooking(booking),
	})
}
