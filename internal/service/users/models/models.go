package models

import (
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// UserResponse профиль пользователя без пароля
type UserResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	ProfileImage  *string `json:"profileImage,omitempty"`
	WalletBalance float64 `json:"walletBalance"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// UpdateProfileRequest запрос на обновление профиля, nil поля не меняются
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// TransactionResponse запись журнала кошелька
type TransactionResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
}

// WalletResponse кошелёк с журналом операций
type WalletResponse struct {
	Balance      float64                `json:"balance"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// TopUpRequest запрос на пополнение кошелька
type TopUpRequest struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description *string `json:"description,omitempty"`
}

// VehicleResponse транспорт пользователя
type VehicleResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	PlateNumber string `json:"plateNumber"`
	Model       string `json:"model"`
	IsEV        bool   `json:"isEV"`
}

// AddVehicleRequest запрос на добавление транспорта
type AddVehicleRequest struct {
	Type        string `json:"type" validate:"required"`
	PlateNumber string `json:"plateNumber" validate:"required"`
	Model       string `json:"model"`
	IsEV        bool   `json:"isEV"`
}

// PlaceResponse сохранённое место пользователя
type PlaceResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddPlaceRequest запрос на добавление сохранённого места
type AddPlaceRequest struct {
	Name      string  `json:"name" validate:"required"`
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FromDomainUser конвертирует пользователя в профиль без пароля
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		Status:        string(u.Status),
		ProfileImage:  u.ProfileImage,
		WalletBalance: u.WalletBalance,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainTransactions конвертирует журнал кошелька
func FromDomainTransactions(transactions []domain.WalletTransaction) []*TransactionResponse {
	responses := make([]*TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		responses = append(responses, &TransactionResponse{
			ID:          txn.ID,
			Type:        string(txn.Kind),
			Amount:      txn.Amount,
			Description: txn.Description,
			CreatedAt:   txn.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses
}

// FromDomainVehicles конвертирует транспорт пользователя
func FromDomainVehicles(vehicles []domain.Vehicle) []*VehicleResponse {
	responses := make([]*VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, &VehicleResponse{
			ID:          v.ID,
			Type:        v.VehicleType,
			PlateNumber: v.PlateNumber,
			Model:       v.Model,
			IsEV:        v.IsEV,
		})
	}
	return responses
}

// FromDomainPlaces конвертирует сохранённые места
func FromDomainPlaces(places []domain.SavedPlace) []*PlaceResponse {
	responses := make([]*PlaceResponse, 0, len(places))
	for _, p := range places {
		responses = append(responses, &PlaceResponse{
			ID:        p.ID,
			Name:      p.Name,
			Address:   p.Address,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		})
	}
	return responses
}
