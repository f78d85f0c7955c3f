package availability

import "time"

// Occupied занятый полуинтервал [Start, End)
// Представляет как активную запись, так и блок отсутствия мастера -
// для проверки пересечений они неразличимы.
type Occupied struct {
	Start time.Time
	End   time.Time
}

// HasConflict проверяет, пересекается ли интервал кандидата [start, end)
// с каким-либо занятым интервалом, расширенным буфером с обеих сторон.
//
// Буфер применяется к занятому интервалу, а не к кандидату; для одиночной
// попарной проверки это эквивалентно расширению любой из сторон.
// Пересечение полуинтервалов: a.start < b.end && b.start < a.end -
// граничащие интервалы (конец одного равен началу другого) не конфликтуют.
func HasConflict(start, end time.Time, occupied []Occupied, buffer time.Duration) bool {
	for _, o := range occupied {
		bufferedStart := o.Start.Add(-buffer)
		bufferedEnd := o.End.Add(buffer)

		if start.Before(bufferedEnd) && bufferedStart.Before(end) {
			return true
		}
	}
	return false
}
