package availability

import "time"

// Slot кандидат на бронирование фиксированной длительности
type Slot struct {
	Label     string    // Время начала в формате "HH:MM"
	StartsAt  time.Time // Момент начала слота
	Available bool
}

// CalculateSlots генерирует слоты рабочего дня [windowStart, windowEnd)
// с шагом interval и длительностью serviceDuration каждый.
//
// Генерация останавливается на первом кандидате, чей конец выходит за
// windowEnd: старты монотонно возрастают, значит не поместятся и все
// последующие. Слот помечается недоступным, если его начало строго раньше
// now, либо если его интервал конфликтует с одним из занятых интервалов,
// расширенных буфером (см. HasConflict). Прошедшие слоты не выбрасываются,
// а возвращаются с Available=false - календарь дня отображается целиком.
//
// Все входные моменты времени должны быть в одной и той же локации;
// функция не выполняет никаких преобразований таймзон.
func CalculateSlots(
	windowStart time.Time,
	windowEnd time.Time,
	occupied []Occupied,
	serviceDuration time.Duration,
	buffer time.Duration,
	interval time.Duration,
	now time.Time,
) []Slot {
	if serviceDuration <= 0 || interval <= 0 {
		return []Slot{}
	}
	if !windowEnd.After(windowStart) {
		return []Slot{}
	}

	slots := make([]Slot, 0)

	for start := windowStart; ; start = start.Add(interval) {
		end := start.Add(serviceDuration)
		if end.After(windowEnd) {
			break
		}

		available := !start.Before(now) && !HasConflict(start, end, occupied, buffer)

		slots = append(slots, Slot{
			Label:     start.Format("15:04"),
			StartsAt:  start,
			Available: available,
		})
	}

	return slots
}
