package admin_users

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	adminService "github.com/m04kA/ParkEase-Backend/internal/service/admin"
	"github.com/m04kA/ParkEase-Backend/internal/service/admin/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidFilter = "некорректный фильтр"
	msgUserNotFound  = "пользователь не найден"
	msgContention    = "слишком много одновременных запросов, повторите попытку"
)

// Handler обслуживает админские операции над пользователями
type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type userResponse struct {
	Message string               `json:"message"`
	User    *models.UserResponse `json:"user"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

// HandleListUsers GET /api/admin/users?role=..&status=..
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListUsersRequest{}
	if role := query.Get("role"); role != "" {
		req.Role = &role
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListUsers(r.Context(), req)
	if err != nil {
		if errors.Is(err, adminService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/users - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListDrivers GET /api/admin/drivers
func (h *Handler) HandleListDrivers(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListDrivers(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/drivers - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleListProviders GET /api/admin/providers
func (h *Handler) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListProviders(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/providers - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGetUserDetails GET /api/admin/users/{userId}
func (h *Handler) HandleGetUserDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	details, err := h.service.GetUserDetails(r.Context(), userID)
	if err != nil {
		if errors.Is(err, adminService.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /admin/users/{id} - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, details)
}

// HandleSuspendUser PATCH /api/admin/users/{userId}/suspend
func (h *Handler) HandleSuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.SuspendUser, "User suspended successfully", "PATCH /admin/users/{id}/suspend")
}

// HandleActivateUser PATCH /api/admin/users/{userId}/activate
func (h *Handler) HandleActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.service.ActivateUser, "User activated successfully", "PATCH /admin/users/{id}/activate")
}

// HandleDeleteUser DELETE /api/admin/users/{userId}
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, adminService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, adminService.ErrContention):
			h.logger.Warn("DELETE /admin/users/{id} - Contention: user_id=%d", userID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("DELETE /admin/users/{id} - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, deleteResponse{Message: "User deleted successfully"})
}

// HandleStats GET /api/admin/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/stats - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

type statusSetter func(ctx context.Context, id int64) (*models.UserResponse, error)

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, set statusSetter, message, op string) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := set(r.Context(), userID)
	if err != nil {
		if errors.Is(err, adminService.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("%s - Failed: user_id=%d, error=%v", op, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, userResponse{Message: message, User: user})
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return 0, false
	}
	return userID, true
}
