package user_profile

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/service/users/models"
)

type UserService interface {
	GetProfile(ctx context.Context, id int64) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*models.UserResponse, error)
	GetWallet(ctx context.Context, id int64) (*models.WalletResponse, error)
	TopUp(ctx context.Context, id int64, req *models.TopUpRequest) (*models.WalletResponse, error)
	AddVehicle(ctx context.Context, userID int64, req *models.AddVehicleRequest) ([]*models.VehicleResponse, error)
	RemoveVehicle(ctx context.Context, userID, vehicleID int64) ([]*models.VehicleResponse, error)
	AddPlace(ctx context.Context, userID int64, req *models.AddPlaceRequest) ([]*models.PlaceResponse, error)
	RemovePlace(ctx context.Context, userID, placeID int64) ([]*models.PlaceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
