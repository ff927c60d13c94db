package ev

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("parking lot not found")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("ev station not found")

	// ErrStationExists возвращается при добавлении станции с занятым ID
	ErrStationExists = errors.New("ev station already exists")

	// ErrNoCharging возвращается, когда на парковке нет станций зарядки
	ErrNoCharging = errors.New("no ev charging available at this location")

	// ErrAccessDenied возвращается, когда станции меняет не владелец парковки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
