package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrEmailTaken возвращается при создании пользователя с занятым email
	ErrEmailTaken = errors.New("user.repository: email already registered")

	// ErrVehicleNotFound возвращается, когда транспорт пользователя не найден
	ErrVehicleNotFound = errors.New("user.repository: vehicle not found")

	// ErrPlaceNotFound возвращается, когда сохранённое место не найдено
	ErrPlaceNotFound = errors.New("user.repository: saved place not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
