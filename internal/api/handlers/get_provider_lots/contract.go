package get_provider_lots

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

type LotService interface {
	GetByProvider(ctx context.Context, providerID int64) (*models.LotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
