package checkout_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("checkout_booking: booking not found")

	// ErrNotActive возвращается при попытке check-out без предшествующего check-in
	ErrNotActive = errors.New("checkout_booking: booking is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout_booking: invalid input data")

	// ErrContention возвращается, когда транзакция не прошла из-за конкурентных запросов
	ErrContention = errors.New("checkout_booking: too much contention, retry the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout_booking: internal error")
)
