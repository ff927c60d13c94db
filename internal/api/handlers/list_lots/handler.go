package list_lots

import (
	"net/http"
	"strconv"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
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

// Handle GET /api/parking?latitude=..&longitude=..&radius=..&status=..
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListLotsRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	// Нечисловые координаты и радиус игнорируются, как и их отсутствие
	if lat, err := strconv.ParseFloat(query.Get("latitude"), 64); err == nil {
		req.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(query.Get("longitude"), 64); err == nil {
		req.Longitude = &lon
	}
	if radius, err := strconv.ParseFloat(query.Get("radius"), 64); err == nil {
		req.RadiusKm = &radius
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /parking - Failed to list lots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
