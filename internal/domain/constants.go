package domain

// DefaultCurrency валюта по умолчанию для тарифов и бронирований
const DefaultCurrency = "₹"

// VehicleTypes допустимые типы транспортных средств
var VehicleTypes = []string{"car", "bike", "truck", "lorry"}

// ValidVehicleType проверяет, что тип транспортного средства известен
func ValidVehicleType(vt string) bool {
	for _, known := range VehicleTypes {
		if vt == known {
			return true
		}
	}
	return false
}
