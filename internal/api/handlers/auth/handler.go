package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/api/middleware"
	"github.com/m04kA/ParkEase-Backend/internal/service/authsvc"
	"github.com/m04kA/ParkEase-Backend/internal/service/authsvc/models"
)

const (
	msgInvalidBody        = "некорректное тело запроса"
	msgEmailTaken         = "User with this email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgAccountSuspended   = "Account is suspended"
	msgUnauthorized       = "требуется авторизация"
	msgUserNotFound       = "пользователь не найден"
)

// Handler обслуживает регистрацию, вход и проверку токена
type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type registerResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    *models.UserInfo `json:"user"`
}

type loginResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    *models.UserInfo `json:"user"`
}

type verifyResponse struct {
	User *models.UserInfo `json:"user"`
}

// HandleRegister POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailTaken):
			h.logger.Warn("POST /auth/register - Email taken: email=%s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, authsvc.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST /auth/register - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

// HandleLogin POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, authsvc.ErrAccountSuspended):
			h.logger.Warn("POST /auth/login - Suspended account: email=%s", req.Email)
			handlers.RespondForbidden(w, msgAccountSuspended)

		default:
			h.logger.Error("POST /auth/login - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// HandleVerify GET /api/auth/verify
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.FromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	user, err := h.service.Verify(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, authsvc.ErrUserNotFound) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /auth/verify - Failed: user_id=%d, error=%v", claims.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, verifyResponse{User: user})
}
