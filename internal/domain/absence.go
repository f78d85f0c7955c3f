package domain

import "time"

// StaffAbsence represents a time block during which a barber is unavailable
// (отпуск, больничный, перерыв). По форме эквивалентен занятому интервалу
// записи и участвует в расчёте доступности наравне с ними.
type StaffAbsence struct {
	ID         int64
	BusinessID int64
	BarberID   int64
	StartsAt   time.Time
	EndsAt     time.Time
	AllDay     bool
	Reason     *string
	CreatedAt  time.Time
}

// IntervalOn возвращает занятый интервал отсутствия в пределах указанного дня
// Для all-day отсутствия интервал покрывает весь день целиком
func (a *StaffAbsence) IntervalOn(date time.Time) (start, end time.Time) {
	if a.AllDay {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		return dayStart, dayStart.AddDate(0, 0, 1)
	}
	return a.StartsAt, a.EndsAt
}
