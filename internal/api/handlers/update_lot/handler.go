package update_lot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotsService "github.com/m04kA/ParkEase-Backend/internal/service/lots"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidLotID = "некорректный ID парковки"
	msgInvalidBody  = "некорректное тело запроса"
	msgLotNotFound  = "парковка не найдена"
	msgAccessDenied = "Not authorized to update this parking lot"
)

type Handler struct {
	service LotService
	logger  Logger
}

func NewHandler(service LotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type response struct {
	Message    string              `json:"message"`
	ParkingLot *models.LotResponse `json:"parkingLot"`
}

// Handle PUT /api/parking/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	lotID, err := strconv.ParseInt(mux.Vars(r)["lotId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	var req models.UpdateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /parking/{id} - Invalid request body: lot_id=%d, error=%v", lotID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	lot, err := h.service.Update(r.Context(), lotID, claims.UserID, domain.Role(claims.Role), &req)
	if err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("PUT /parking/{id} - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lotsService.ErrAccessDenied):
			h.logger.Warn("PUT /parking/{id} - Access denied: lot_id=%d, user_id=%d", lotID, claims.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, lotsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PUT /parking/{id} - Failed to update lot: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response{
		Message:    "Parking lot updated successfully",
		ParkingLot: lot,
	})
}
