package user_profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	usersService "github.com/m04kA/ParkEase-Backend/internal/service/users"
	"github.com/m04kA/ParkEase-Backend/internal/service/users/models"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgInvalidVehicleID = "некорректный ID транспорта"
	msgInvalidPlaceID   = "некорректный ID места"
	msgInvalidBody      = "некорректное тело запроса"
	msgUserNotFound     = "пользователь не найден"
	msgVehicleNotFound  = "транспорт не найден"
	msgPlaceNotFound    = "сохранённое место не найдено"
	msgInvalidAmount    = "сумма пополнения должна быть положительной"
	msgContention       = "слишком много одновременных запросов, повторите попытку"
)

// Handler обслуживает профиль, кошелёк, транспорт и сохранённые места
type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type profileResponse struct {
	User *models.UserResponse `json:"user"`
}

type updateProfileResponse struct {
	Message string               `json:"message"`
	User    *models.UserResponse `json:"user"`
}

type walletResponse struct {
	Wallet *models.WalletResponse `json:"wallet"`
}

type topUpResponse struct {
	Message string                 `json:"message"`
	Wallet  *models.WalletResponse `json:"wallet"`
}

type vehiclesResponse struct {
	Message  string                    `json:"message"`
	Vehicles []*models.VehicleResponse `json:"vehicles"`
}

type placesResponse struct {
	Message     string                  `json:"message"`
	SavedPlaces []*models.PlaceResponse `json:"savedPlaces"`
}

// HandleGetProfile GET /api/users/{userId}
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /users/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profileResponse{User: user})
}

// HandleUpdateProfile PUT /api/users/{userId}
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /users/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, updateProfileResponse{
		Message: "Profile updated successfully",
		User:    user,
	})
}

// HandleGetWallet GET /api/users/{userId}/wallet
func (h *Handler) HandleGetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "GET /users/{id}/wallet", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, walletResponse{Wallet: wallet})
}

// HandleTopUp POST /api/users/{userId}/wallet/add
func (h *Handler) HandleTopUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.TopUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{id}/wallet/add - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	wallet, err := h.service.TopUp(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usersService.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, usersService.ErrContention):
			h.logger.Warn("POST /users/{id}/wallet/add - Contention: user_id=%d", userID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.respondServiceError(w, "POST /users/{id}/wallet/add", userID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, topUpResponse{
		Message: "Funds added successfully",
		Wallet:  wallet,
	})
}

// HandleAddVehicle POST /api/users/{userId}/vehicles
func (h *Handler) HandleAddVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.AddVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{id}/vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	vehicles, err := h.service.AddVehicle(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /users/{id}/vehicles", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, vehiclesResponse{
		Message:  "Vehicle added successfully",
		Vehicles: vehicles,
	})
}

// HandleRemoveVehicle DELETE /api/users/{userId}/vehicles/{vehicleId}
func (h *Handler) HandleRemoveVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	vehicles, err := h.service.RemoveVehicle(r.Context(), userID, vehicleID)
	if err != nil {
		if errors.Is(err, usersService.ErrVehicleNotFound) {
			handlers.RespondNotFound(w, msgVehicleNotFound)
			return
		}
		h.respondServiceError(w, "DELETE /users/{id}/vehicles/{vid}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, vehiclesResponse{
		Message:  "Vehicle removed successfully",
		Vehicles: vehicles,
	})
}

// HandleAddPlace POST /api/users/{userId}/saved-places
func (h *Handler) HandleAddPlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.AddPlaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users/{id}/saved-places - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	places, err := h.service.AddPlace(r.Context(), userID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /users/{id}/saved-places", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, placesResponse{
		Message:     "Place saved successfully",
		SavedPlaces: places,
	})
}

// HandleRemovePlace DELETE /api/users/{userId}/saved-places/{placeId}
func (h *Handler) HandleRemovePlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	placeID, err := strconv.ParseInt(mux.Vars(r)["placeId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPlaceID)
		return
	}

	places, err := h.service.RemovePlace(r.Context(), userID, placeID)
	if err != nil {
		if errors.Is(err, usersService.ErrPlaceNotFound) {
			handlers.RespondNotFound(w, msgPlaceNotFound)
			return
		}
		h.respondServiceError(w, "DELETE /users/{id}/saved-places/{pid}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, placesResponse{
		Message:     "Place removed successfully",
		SavedPlaces: places,
	})
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return 0, false
	}
	return userID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, userID int64, err error) {
	switch {
	case errors.Is(err, usersService.ErrUserNotFound):
		h.logger.Warn("%s - User not found: user_id=%d", op, userID)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, usersService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBody)

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
	}
}
