package create_lot

import (
	"errors"
	"net/http"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	"github.com/m04kA/ParkEase-Backend/internal/domain"
	lotsService "github.com/m04kA/ParkEase-Backend/internal/service/lots"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgProvidersOnly = "Only providers can create parking lots"
	msgInvalidBody   = "некорректное тело запроса"
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

// Handle POST /api/parking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if domain.Role(claims.Role) != domain.RoleProvider {
		h.logger.Warn("POST /parking - Non-provider attempt: user_id=%d, role=%s", claims.UserID, claims.Role)
		handlers.RespondForbidden(w, msgProvidersOnly)
		return
	}

	var req models.CreateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	lot, err := h.service.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, lotsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)
		default:
			h.logger.Error("POST /parking - Failed to create lot: provider_id=%d, error=%v", claims.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parking - Lot created: lot_id=%d, provider_id=%d", lot.ID, claims.UserID)
	handlers.RespondJSON(w, http.StatusCreated, response{
		Message:    "Parking lot created successfully",
		ParkingLot: lot,
	})
}
