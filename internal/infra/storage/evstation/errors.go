package evstation

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция зарядки не найдена
	ErrStationNotFound = errors.New("evstation.repository: ev station not found")

	// ErrStationExists возвращается при добавлении станции с занятым ID внутри парковки
	ErrStationExists = errors.New("evstation.repository: station id already exists in this lot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("evstation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("evstation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("evstation.repository: failed to scan row")
)
