package models

import (
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// LocationInfo координаты парковки
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PricingInfo тариф парковки
type PricingInfo struct {
	HourlyRate float64 `json:"hourlyRate"`
	Currency   string  `json:"currency"`
}

// SlotsInfo счетчики мест
type SlotsInfo struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// ProviderSummary краткие данные провайдера
type ProviderSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// LotResponse ответ с данными парковки
type LotResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	Location     LocationInfo     `json:"location"`
	ProviderID   int64            `json:"providerId"`
	Provider     *ProviderSummary `json:"provider,omitempty"`
	Pricing      PricingInfo      `json:"pricing"`
	Slots        SlotsInfo        `json:"slots"`
	Status       string           `json:"status"`
	VehicleTypes []string         `json:"vehicleTypes"`
	Amenities    []string         `json:"amenities"`
	CreatedAt    string           `json:"createdAt"`
	UpdatedAt    string           `json:"updatedAt"`
}

// LotListResponse список парковок
type LotListResponse struct {
	ParkingLots []*LotResponse `json:"parkingLots"`
	Count       int            `json:"count"`
}

// CreateLotRequest запрос на создание парковки
type CreateLotRequest struct {
	Name         string       `json:"name" validate:"required"`
	Address      string       `json:"address" validate:"required"`
	Location     LocationInfo `json:"location"`
	HourlyRate   float64      `json:"hourlyRate" validate:"gt=0"`
	Currency     string       `json:"currency"`
	TotalSlots   int          `json:"totalSlots" validate:"gt=0"`
	VehicleTypes []string     `json:"vehicleTypes"`
	Amenities    []string     `json:"amenities"`
}

// UpdateLotRequest запрос на обновление парковки, nil поля не меняются
type UpdateLotRequest struct {
	Name         *string       `json:"name,omitempty"`
	Address      *string       `json:"address,omitempty"`
	Location     *LocationInfo `json:"location,omitempty"`
	HourlyRate   *float64      `json:"hourlyRate,omitempty"`
	Currency     *string       `json:"currency,omitempty"`
	Status       *string       `json:"status,omitempty"`
	VehicleTypes []string      `json:"vehicleTypes,omitempty"`
	Amenities    []string      `json:"amenities,omitempty"`
}

// ListLotsRequest фильтры списка парковок
type ListLotsRequest struct {
	Status    *string
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}

// FromDomainLot конвертирует доменную парковку в response
func FromDomainLot(l *domain.ParkingLot) *LotResponse {
	return &LotResponse{
		ID:      l.ID,
		Name:    l.Name,
		Address: l.Address,
		Location: LocationInfo{
			Latitude:  l.Location.Latitude,
			Longitude: l.Location.Longitude,
		},
		ProviderID: l.ProviderID,
		Pricing: PricingInfo{
			HourlyRate: l.HourlyRate,
			Currency:   l.Currency,
		},
		Slots: SlotsInfo{
			Total:     l.Slots.Total,
			Available: l.Slots.Available,
			Occupied:  l.Slots.Occupied,
		},
		Status:       string(l.Status),
		VehicleTypes: l.VehicleTypes,
		Amenities:    l.Amenities,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainUser конвертирует провайдера в краткую форму
func FromDomainUser(u *domain.User) *ProviderSummary {
	return &ProviderSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
