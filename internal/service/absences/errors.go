package absences

import "errors"

var (
	// ErrAbsenceNotFound возвращается, когда период отсутствия не найден
	ErrAbsenceNotFound = errors.New("absence not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrBarberNotFound возвращается, когда мастер не найден в бизнесе
	ErrBarberNotFound = errors.New("barber not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInterval возвращается при некорректном интервале отсутствия
	ErrInvalidInterval = errors.New("invalid absence interval")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
