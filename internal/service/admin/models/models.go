package models

import (
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// UserResponse пользователь в админских списках, без пароля
type UserResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	WalletBalance float64 `json:"walletBalance"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ProviderResponse провайдер со статистикой по парковкам
type ProviderResponse struct {
	UserResponse
	LotsCount       int64 `json:"lotsCount"`
	EVStationsCount int64 `json:"evStationsCount"`
}

// UserListResponse список пользователей
type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Count int             `json:"count"`
}

// DriverListResponse список водителей
type DriverListResponse struct {
	Drivers []*UserResponse `json:"drivers"`
	Count   int             `json:"count"`
}

// ProviderListResponse список провайдеров со статистикой
type ProviderListResponse struct {
	Providers []*ProviderResponse `json:"providers"`
	Count     int                 `json:"count"`
}

// ListUsersRequest фильтры админского списка пользователей
type ListUsersRequest struct {
	Role   *string
	Status *string
}

// UserDetailsResponse пользователь с деталями по его роли
type UserDetailsResponse struct {
	User          *UserResponse `json:"user"`
	TotalBookings *int          `json:"totalBookings,omitempty"`
	TotalLots     *int          `json:"totalLots,omitempty"`
}

// StatsResponse счетчики для админской панели
type StatsResponse struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalDrivers     int64 `json:"totalDrivers"`
	TotalProviders   int64 `json:"totalProviders"`
	TotalParkingLots int64 `json:"totalParkingLots"`
	TotalBookings    int64 `json:"totalBookings"`
	ActiveBookings   int64 `json:"activeBookings"`
}

// FromDomainUser конвертирует пользователя в админский response
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		Status:        string(u.Status),
		WalletBalance: u.WalletBalance,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainUsers конвертирует список пользователей
func FromDomainUsers(users []*domain.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, FromDomainUser(u))
	}
	return responses
}
