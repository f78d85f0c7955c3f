package get_available_slots

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/availability"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

// buildOccupied собирает занятые интервалы дня из активных записей и отсутствий мастера
// Записи с некорректным временем начала пропускаются - они не могут занимать окно.
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
