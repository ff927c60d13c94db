package create_booking

import "errors"

var (
	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("create_booking: parking lot not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrNoAvailableSlots возвращается, когда на парковке нет свободных мест
	ErrNoAvailableSlots = errors.New("create_booking: no available slots")

	// ErrInsufficientFunds возвращается, когда баланса кошелька не хватает на оплату
	ErrInsufficientFunds = errors.New("create_booking: insufficient wallet balance")

	// ErrLotClosed возвращается при бронировании закрытой парковки
	ErrLotClosed = errors.New("create_booking: parking lot is closed")

	// ErrVehicleTypeNotSupported возвращается, когда парковка не принимает этот тип транспорта
	ErrVehicleTypeNotSupported = errors.New("create_booking: vehicle type is not supported by this lot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrContention возвращается, когда транзакция не прошла из-за конкурентных бронирований
	ErrContention = errors.New("create_booking: too much contention, retry the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
