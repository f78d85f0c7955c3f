package get_available_slots

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	BarberID   int64     // ID мастера (0 - без предпочтения, любой активный мастер)
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	BusinessID int64     // ID бизнеса
	BarberID   int64     // ID мастера
	ServiceID  int64     // ID услуги
	Slots      []Slot    // Слоты рабочего дня, включая недоступные
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	StartsAt        time.Time        // Момент начала слота
	DurationMinutes int              // Длительность слота в минутах (длительность услуги)
	Available       bool             // Доступен ли слот для бронирования
}
