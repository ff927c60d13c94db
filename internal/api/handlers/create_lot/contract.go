package create_lot

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

type LotService interface {
	Create(ctx context.Context, providerID int64, req *models.CreateLotRequest) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
