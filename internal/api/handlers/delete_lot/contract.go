package delete_lot

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

type LotService interface {
	Delete(ctx context.Context, id, requesterID int64, requesterRole domain.Role) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
