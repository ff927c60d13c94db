package models

import (
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role" validate:"required,oneof=driver provider"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo данные пользователя в ответах аутентификации, без пароля
type UserInfo struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	WalletBalance float64 `json:"walletBalance"`
	CreatedAt     string  `json:"createdAt"`
}

// AuthResponse токен вместе с данными пользователя
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// FromDomainUser конвертирует пользователя в безопасную форму
func FromDomainUser(u *domain.User) *UserInfo {
	return &UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		Status:        string(u.Status),
		WalletBalance: u.WalletBalance,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}
