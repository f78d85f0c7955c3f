package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrBarberNotFound возвращается, когда мастер не найден в бизнесе
	ErrBarberNotFound = errors.New("barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга отключена в каталоге
	ErrServiceInactive = errors.New("service is inactive")

	// ErrInvalidDate возвращается при некорректной дате (в прошлом)
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
