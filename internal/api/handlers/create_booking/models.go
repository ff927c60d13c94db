package create_booking

import (
	"time"

	bookingModels "github.com/m04kA/ParkEase-Backend/internal/service/bookings/models"
	createBooking "github.com/m04kA/ParkEase-Backend/internal/usecase/create_booking"
)

// VehicleInfo транспорт в запросе бронирования
type VehicleInfo struct {
	Type        string  `json:"type" validate:"required"`
	PlateNumber *string `json:"plateNumber,omitempty"`
	Model       *string `json:"model,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ParkingLotID int64       `json:"parkingLotId" validate:"required,gt=0"`
	Vehicle      VehicleInfo `json:"vehicle"`
	SlotNumber   string      `json:"slotNumber,omitempty"`
	StartTime    time.Time   `json:"startTime" validate:"required"`
	EndTime      time.Time   `json:"endTime" validate:"required"`
	TotalAmount  float64     `json:"totalAmount" validate:"gt=0"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Message string                         `json:"message"`
	Booking *bookingModels.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:       userID,
		LotID:        r.ParkingLotID,
		VehicleType:  r.Vehicle.Type,
		VehiclePlate: r.Vehicle.PlateNumber,
		VehicleModel: r.Vehicle.Model,
		SlotNumber:   r.SlotNumber,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		TotalAmount:  r.TotalAmount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	booking := bookingModels.FromDomainBooking(resp.Booking)
	booking.ParkingLot = &bookingModels.LotSummary{
		ID:        resp.Lot.ID,
		Name:      resp.Lot.Name,
		Address:   resp.Lot.Address,
		Latitude:  resp.Lot.Latitude,
		Longitude: resp.Lot.Longitude,
	}
	booking.Driver = &bookingModels.DriverSummary{
		ID:    resp.Driver.ID,
		Name:  resp.Driver.Name,
		Email: resp.Driver.Email,
		Phone: resp.Driver.Phone,
	}

	return &CreateBookingResponse{
		Message: "Booking created successfully",
		Booking: booking,
	}
}
