package domain

import "time"

// DiscountType тип скидки промо-правила
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// PromoRule represents a prioritized, time/day/service-scoped discount policy
// Правила принадлежат бизнесу и оцениваются против контекста бронирования
// (день недели, час, услуга). Меньший Priority - выше приоритет.
type PromoRule struct {
	ID         string // UUID; при равном Priority выигрывает меньший ID (лексикографически)
	BusinessID int64
	Label      string
	Enabled    bool
	Priority   int
	Days       []int // Дни недели 0 (воскресенье) .. 6 (суббота)
	StartHour  int   // Начало действия (включительно)
	EndHour    int   // Конец действия (исключительно), EndHour > StartHour
	Type       DiscountType
	// Для percent - процент скидки (20 = 20%), для fixed - сумма в копейках/центах
	Value      int64
	ServiceIDs []int64 // Пустой список = применяется ко всем услугам
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppliesOnDay проверяет, что правило действует в указанный день недели
func (r *PromoRule) AppliesOnDay(day int) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// AppliesAtHour проверяет, что час попадает в окно [StartHour, EndHour)
func (r *PromoRule) AppliesAtHour(hour int) bool {
	return hour >= r.StartHour && hour < r.EndHour
}

// AppliesToService проверяет, что правило действует для услуги
// Пустой список ServiceIDs означает "для всех услуг"
func (r *PromoRule) AppliesToService(serviceID int64) bool {
	if len(r.ServiceIDs) == 0 {
		return true
	}
	for _, id := range r.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
