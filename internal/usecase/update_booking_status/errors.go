package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("update_booking_status: unknown booking status")

	// ErrInvalidTransition возвращается, когда переход запрещён таблицей переходов.
	// В частности, повторная отмена отклоняется и повторного возврата средств не происходит.
	ErrInvalidTransition = errors.New("update_booking_status: illegal status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrContention возвращается, когда транзакция не прошла из-за конкурентных запросов
	ErrContention = errors.New("update_booking_status: too much contention, retry the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
