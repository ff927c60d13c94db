package create_booking

import (
	"time"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// Request входные данные создания бронирования
type Request struct {
	UserID int64
	LotID  int64

	VehicleType  string
	VehiclePlate *string
	VehicleModel *string

	SlotNumber  string
	StartTime   time.Time
	EndTime     time.Time
	TotalAmount float64
}

// LotSummary денормализованные данные парковки в ответе
type LotSummary struct {
	ID        int64
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
}

// DriverSummary денормализованные данные водителя в ответе
type DriverSummary struct {
	ID    int64
	Name  string
	Email string
	Phone *string
}

// Response результат создания бронирования
type Response struct {
	Booking *domain.Booking
	Lot     LotSummary
	Driver  DriverSummary
}
