package admin_users

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/service/admin/models"
)

type AdminService interface {
	ListUsers(ctx context.Context, req *models.ListUsersRequest) (*models.UserListResponse, error)
	ListDrivers(ctx context.Context) (*models.DriverListResponse, error)
	ListProviders(ctx context.Context) (*models.ProviderListResponse, error)
	GetUserDetails(ctx context.Context, id int64) (*models.UserDetailsResponse, error)
	SuspendUser(ctx context.Context, id int64) (*models.UserResponse, error)
	ActivateUser(ctx context.Context, id int64) (*models.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
