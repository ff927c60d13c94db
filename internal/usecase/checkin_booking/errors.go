package checkin_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("checkin_booking: booking not found")

	// ErrNotConfirmed возвращается при попытке check-in не из статуса confirmed
	ErrNotConfirmed = errors.New("checkin_booking: booking is not confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkin_booking: invalid input data")

	// ErrContention возвращается, когда транзакция не прошла из-за конкурентных запросов
	ErrContention = errors.New("checkin_booking: too much contention, retry the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkin_booking: internal error")
)
