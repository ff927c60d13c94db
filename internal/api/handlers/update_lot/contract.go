package update_lot

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
	"github.com/m04kA/ParkEase-Backend/internal/service/lots/models"
)

type LotService interface {
	Update(ctx context.Context, id, requesterID int64, requesterRole domain.Role, req *models.UpdateLotRequest) (*models.LotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
