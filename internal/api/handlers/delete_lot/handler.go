package delete_lot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotsService "github.com/m04kA/ParkEase-Backend/internal/service/lots"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgInvalidLotID = "некорректный ID парковки"
	msgLotNotFound  = "парковка не найдена"
	msgAccessDenied = "Not authorized to delete this parking lot"
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
	Message string `json:"message"`
}

// Handle DELETE /api/parking/{lotId}
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

	if err := h.service.Delete(r.Context(), lotID, claims.UserID, domain.Role(claims.Role)); err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("DELETE /parking/{id} - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lotsService.ErrAccessDenied):
			h.logger.Warn("DELETE /parking/{id} - Access denied: lot_id=%d, user_id=%d", lotID, claims.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /parking/{id} - Failed to delete lot: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /parking/{id} - Lot deleted: lot_id=%d, user_id=%d", lotID, claims.UserID)
	handlers.RespondJSON(w, http.StatusOK, response{Message: "Parking lot deleted successfully"})
}
