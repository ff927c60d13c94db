package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrVehicleNotFound возвращается, когда транспорт не найден
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrPlaceNotFound возвращается, когда сохранённое место не найдено
	ErrPlaceNotFound = errors.New("saved place not found")

	// ErrInvalidAmount возвращается при пополнении на нулевую или отрицательную сумму
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrContention возвращается, когда транзакция не прошла из-за конкурентных запросов
	ErrContention = errors.New("too much contention, retry the request")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
