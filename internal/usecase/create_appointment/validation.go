package create_appointment

import (
	"fmt"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/availability"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(apptDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(apptDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	apptDateOnly := time.Date(apptDate.Year(), apptDate.Month(), apptDate.Day(), 0, 0, 0, 0, apptDate.Location())

	if apptDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что запись не нарушает minNoticeMinutes
func validateNotice(startsAt time.Time, now time.Time, minNoticeMinutes int) error {
	minAllowed := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if startsAt.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}
	return nil
}

// validateWithinWindow проверяет, что интервал записи целиком попадает в рабочие часы
func validateWithinWindow(startsAt, endsAt, windowStart, windowEnd time.Time) error {
	if startsAt.Before(windowStart) || endsAt.After(windowEnd) {
		return ErrOutsideWorkingHours
	}
	return nil
}

// buildOccupied собирает занятые интервалы дня из активных записей и отсутствий мастера
func buildOccupied(
	appointments []*domain.Appointment,
	absences []*domain.StaffAbsence,
	date time.Time,
) []availability.Occupied {
	occupied := make([]availability.Occupied, 0, len(appointments)+len(absences))

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		start, err := appt.StartTime.OnDate(date)
		if err != nil {
			continue
		}
		end := start.Add(time.Duration(appt.DurationMinutes) * time.Minute)

		occupied = append(occupied, availability.Occupied{Start: start, End: end})
	}

	for _, absence := range absences {
		start, end := absence.IntervalOn(date)
		occupied = append(occupied, availability.Occupied{Start: start, End: end})
	}

	return occupied
}

// slotInterval вычисляет интервал записи [startsAt, endsAt) на указанную дату
func slotInterval(date time.Time, startTime types.TimeString, durationMinutes int) (time.Time, time.Time, error) {
	startsAt, err := startTime.OnDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endsAt := startsAt.Add(time.Duration(durationMinutes) * time.Minute)
	return startsAt, endsAt, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
