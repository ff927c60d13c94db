package ev_stations

import (
	"context"

	"github.com/m04kA/ParkEase-Backend/internal/service/ev/models"
)

type StationService interface {
	ListAll(ctx context.Context) (*models.AllStationsResponse, error)
	ListByLot(ctx context.Context, lotID int64) (*models.LotStationsResponse, error)
	Add(ctx context.Context, lotID int64, providerID int64, req *models.AddStationRequest) ([]*models.StationResponse, error)
	Update(ctx context.Context, lotID int64, stationID string, req *models.UpdateStationRequest) (*models.StationResponse, error)
	Delete(ctx context.Context, lotID int64, stationID string, providerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
