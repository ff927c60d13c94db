package ev_stations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	evService "github.com/m04kA/ParkEase-Backend/internal/service/ev"
	"github.com/m04kA/ParkEase-Backend/internal/service/ev/models"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidLotID    = "некорректный ID парковки"
	msgInvalidBody     = "некорректное тело запроса"
	msgLotNotFound     = "парковка не найдена"
	msgStationNotFound = "станция зарядки не найдена"
	msgStationExists   = "станция с таким ID уже существует"
	msgNoCharging      = "No EV charging available at this location"
	msgNotOwnerAdd     = "Not authorized to add stations to this parking lot"
	msgNotOwnerDelete  = "Not authorized to delete stations from this parking lot"
)

// Handler обслуживает все операции со станциями зарядки
type Handler struct {
	service StationService
	logger  Logger
}

func NewHandler(service StationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type addResponse struct {
	Message    string                    `json:"message"`
	EVStations []*models.StationResponse `json:"evStations"`
}

type updateResponse struct {
	Message string                  `json:"message"`
	Station *models.StationResponse `json:"station"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

// HandleListAll GET /api/ev/stations
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /ev/stations - Failed to list stations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListByLot GET /api/ev/stations/{parkingLotId}
func (h *Handler) HandleListByLot(w http.ResponseWriter, r *http.Request) {
	lotID, ok := h.lotID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListByLot(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, evService.ErrLotNotFound):
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, evService.ErrNoCharging):
			handlers.RespondNotFound(w, msgNoCharging)

		default:
			h.logger.Error("GET /ev/stations/{id} - Failed: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleAdd POST /api/ev/stations/{parkingLotId}
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	lotID, ok := h.lotID(w, r)
	if !ok {
		return
	}

	var req models.AddStationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ev/stations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	stations, err := h.service.Add(r.Context(), lotID, claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, evService.ErrLotNotFound):
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, evService.ErrAccessDenied):
			h.logger.Warn("POST /ev/stations/{id} - Access denied: lot_id=%d, user_id=%d", lotID, claims.UserID)
			handlers.RespondForbidden(w, msgNotOwnerAdd)

		case errors.Is(err, evService.ErrStationExists):
			handlers.RespondConflict(w, msgStationExists)

		case errors.Is(err, evService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST /ev/stations/{id} - Failed: lot_id=%d, error=%v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, addResponse{
		Message:    "EV station added successfully",
		EVStations: stations,
	})
}

// HandleUpdate PATCH /api/ev/stations/{parkingLotId}/{stationId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	lotID, ok := h.lotID(w, r)
	if !ok {
		return
	}
	stationID := mux.Vars(r)["stationId"]

	var req models.UpdateStationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /ev/stations/{id}/{sid} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	station, err := h.service.Update(r.Context(), lotID, stationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, evService.ErrLotNotFound):
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, evService.ErrStationNotFound):
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, evService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PATCH /ev/stations/{id}/{sid} - Failed: lot_id=%d, station_id=%s, error=%v", lotID, stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, updateResponse{
		Message: "EV station updated successfully",
		Station: station,
	})
}

// HandleDelete DELETE /api/ev/stations/{parkingLotId}/{stationId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	lotID, ok := h.lotID(w, r)
	if !ok {
		return
	}
	stationID := mux.Vars(r)["stationId"]

	if err := h.service.Delete(r.Context(), lotID, stationID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, evService.ErrLotNotFound):
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, evService.ErrStationNotFound):
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, evService.ErrAccessDenied):
			h.logger.Warn("DELETE /ev/stations/{id}/{sid} - Access denied: lot_id=%d, user_id=%d", lotID, claims.UserID)
			handlers.RespondForbidden(w, msgNotOwnerDelete)

		default:
			h.logger.Error("DELETE /ev/stations/{id}/{sid} - Failed: lot_id=%d, station_id=%s, error=%v", lotID, stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, deleteResponse{Message: "EV station deleted successfully"})
}

func (h *Handler) lotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	lotID, err := strconv.ParseInt(mux.Vars(r)["parkingLotId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return 0, false
	}
	return lotID, true
}
