package get_lot

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

type LotService interface {
	GetByID(ctx context.Context, id int64) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
