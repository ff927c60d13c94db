package create_booking

import (
	"fmt"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.LotID <= 0 {
		return fmt.Errorf("%w: lotID must be positive", ErrInvalidInput)
	}

	if !domain.ValidVehicleType(req.VehicleType) {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, req.VehicleType)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.TotalAmount <= 0 {
		return fmt.Errorf("%w: totalAmount must be positive", ErrInvalidInput)
	}

	return nil
}
