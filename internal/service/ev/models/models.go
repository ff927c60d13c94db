package models

import "github.com/m04kA/ParkEase-Backend/internal/domain"

// StationResponse ответ с данными станции зарядки
type StationResponse struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	VehicleType *string         `json:"vehicleType,omitempty"`
	Current     *CurrentVehicle `json:"currentVehicle,omitempty"`
}

// CurrentVehicle транспорт, заряжающийся на станции
type CurrentVehicle struct {
	PlateNumber   *string `json:"plateNumber,omitempty"`
	TimeRemaining *int    `json:"timeRemaining,omitempty"`
}

// ProviderSummary краткие данные провайдера парковки
type ProviderSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// LotStations станции зарядки одной парковки
type LotStations struct {
	ParkingLotID   int64              `json:"parkingLotId"`
	ParkingLotName string             `json:"parkingLotName"`
	Address        string             `json:"address"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	Provider       *ProviderSummary   `json:"provider,omitempty"`
	Stations       []*StationResponse `json:"stations"`
}

// AllStationsResponse станции по всем парковкам
type AllStationsResponse struct {
	EVStations []*LotStations `json:"evStations"`
	Count      int            `json:"count"`
}

// LotStationsResponse станции одной парковки
type LotStationsResponse struct {
	ParkingLotName string             `json:"parkingLotName"`
	Stations       []*StationResponse `json:"stations"`
}

// AddStationRequest запрос на добавление станции
type AddStationRequest struct {
	ID          string  `json:"id" validate:"required"`
	VehicleType *string `json:"vehicleType,omitempty"`
}

// UpdateStationRequest запрос на обновление станции, nil поля не меняются
type UpdateStationRequest struct {
	Status              *string `json:"status,omitempty"`
	CurrentVehiclePlate *string `json:"currentVehiclePlate,omitempty"`
	TimeRemaining       *int    `json:"timeRemaining,omitempty"`
}

// FromDomainStation конвертирует доменную станцию в response
func FromDomainStation(s *domain.EVStation) *StationResponse {
	resp := &StationResponse{
		ID:          s.StationID,
		Status:      string(s.Status),
		VehicleType: s.VehicleType,
	}
	if s.CurrentVehiclePlate != nil || s.TimeRemainingMinutes != nil {
		resp.Current = &CurrentVehicle{
			PlateNumber:   s.CurrentVehiclePlate,
			TimeRemaining: s.TimeRemainingMinutes,
		}
	}
	return resp
}

// FromDomainStations конвертирует список станций
func FromDomainStations(stations []*domain.EVStation) []*StationResponse {
	responses := make([]*StationResponse, 0, len(stations))
	for _, s := range stations {
		responses = append(responses, FromDomainStation(s))
	}
	return responses
}
