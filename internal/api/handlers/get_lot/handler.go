package get_lot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	lotsService "github.com/m04kA/ParkEase-Backend/internal/service/lots"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

const (
	msgInvalidLotID = "некорректный ID парковки"
	msgLotNotFound  = "парковка не найдена"
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
	ParkingLot *models.LotResponse `json:"parkingLot"`
}

// Handle GET /api/parking/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := strconv.ParseInt(mux.Vars(r)["lotId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	lot, err := h.service.GetByID(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("GET /parking/{id} - Lot not found: lot_id=%d", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)
		default:
			h.logger.Error("GET /parking/{id} - Failed to fetch lot: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, response{ParkingLot: lot})
}
