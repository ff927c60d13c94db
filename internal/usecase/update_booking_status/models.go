package update_booking_status

import "github.com/m04kA/ParkEase-Backend/internal/domain"

// Request входные данные смены статуса бронирования
type Request struct {
	BookingID int64
	NewStatus string
}

// Response результат смены статуса
type Response struct {
	Booking *domain.Booking
}
