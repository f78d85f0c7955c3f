package create_appointment

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_appointment: business not found")

	// ErrBarberNotFound возвращается, когда мастер не найден в бизнесе
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена в каталоге
	ErrServiceInactive = errors.New("create_appointment: service is inactive")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrBusinessClosed возвращается, когда бизнес закрыт в указанную дату
	ErrBusinessClosed = errors.New("create_appointment: business is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал записи выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrSlotTaken возвращается, когда выбранный интервал пересекается с существующей записью
	// или отсутствием мастера
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrTooLateToBook возвращается, когда запись нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
