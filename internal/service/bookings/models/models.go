package models

import (
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// VehicleInfo снимок транспортного средства в бронировании
type VehicleInfo struct {
	Type        string  `json:"type"`
	PlateNumber *string `json:"plateNumber,omitempty"`
	Model       *string `json:"model,omitempty"`
}

// DurationInfo длительность бронирования
type DurationInfo struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// PricingInfo снимок цены в бронировании
type PricingInfo struct {
	HourlyRate  float64 `json:"hourlyRate"`
	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`
}

// CheckInfo запись о check-in/check-out
type CheckInfo struct {
	Time     *string `json:"time,omitempty"`
	Verified bool    `json:"verified"`
}

// LotSummary краткие данные парковки
type LotSummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DriverSummary краткие данные водителя
type DriverSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"userId"`
	ParkingLotID  int64          `json:"parkingLotId"`
	Vehicle       VehicleInfo    `json:"vehicle"`
	SlotNumber    string         `json:"slotNumber,omitempty"`
	StartTime     string         `json:"startTime"`
	EndTime       string         `json:"endTime"`
	Duration      DurationInfo   `json:"duration"`
	Pricing       PricingInfo    `json:"pricing"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	QRCode        string         `json:"qrCode"`
	CheckIn       CheckInfo      `json:"checkIn"`
	CheckOut      CheckInfo      `json:"checkOut"`
	CancelledAt   *string        `json:"cancelledAt,omitempty"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
	ParkingLot    *LotSummary    `json:"parkingLot,omitempty"`
	Driver        *DriverSummary `json:"driver,omitempty"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Count    int                `json:"count"`
}

// FromDomainBooking конвертирует доменное бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		ParkingLotID: b.LotID,
		Vehicle: VehicleInfo{
			Type:        b.VehicleType,
			PlateNumber: b.VehiclePlate,
			Model:       b.VehicleModel,
		},
		SlotNumber: b.SlotNumber,
		StartTime:  b.StartTime.Format(time.RFC3339),
		EndTime:    b.EndTime.Format(time.RFC3339),
		Duration: DurationInfo{
			Hours:   b.Duration.Hours,
			Minutes: b.Duration.Minutes,
		},
		Pricing: PricingInfo{
			HourlyRate:  b.HourlyRate,
			TotalAmount: b.TotalAmount,
			Currency:    b.Currency,
		},
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		QRCode:        b.QRCode,
		CheckIn:       fromCheckRecord(b.CheckIn),
		CheckOut:      fromCheckRecord(b.CheckOut),
		CancelledAt:   formatTimePtr(b.CancelledAt),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainLot конвертирует парковку в краткую форму
func FromDomainLot(l *domain.ParkingLot) *LotSummary {
	return &LotSummary{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Latitude:  l.Location.Latitude,
		Longitude: l.Location.Longitude,
	}
}

// FromDomainUser конвертирует пользователя в краткую форму
func FromDomainUser(u *domain.User) *DriverSummary {
	return &DriverSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

func fromCheckRecord(c domain.CheckRecord) CheckInfo {
	return CheckInfo{
		Time:     formatTimePtr(c.Time),
		Verified: c.Verified,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
