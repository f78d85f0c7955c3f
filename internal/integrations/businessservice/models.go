package businessservice

import "time"

// DaySchedule расписание работы бизнеса на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "HH:MM"
	CloseTime *string `json:"closeTime,omitempty"` // "HH:MM", строго позже OpenTime
}

// WeeklyHours расписание работы бизнеса по дням недели
type WeeklyHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание на указанный день недели
func (w *WeeklyHours) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Barber мастер бизнеса
type Barber struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Active   bool   `json:"active"`
}

// Business модель бизнеса из BusinessService
type Business struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	ManagerIDs   []int64     `json:"managerIds"`
	Barbers      []Barber    `json:"barbers"`
	WorkingHours WeeklyHours `json:"workingHours"`
}

// HasBarber проверяет, что активный мастер с указанным ID принадлежит бизнесу
func (b *Business) HasBarber(barberID int64) bool {
	for _, barber := range b.Barbers {
		if barber.ID == barberID && barber.Active {
			return true
		}
	}
	return false
}

// ActiveBarberIDs возвращает ID всех активных мастеров бизнеса
func (b *Business) ActiveBarberIDs() []int64 {
	ids := make([]int64, 0, len(b.Barbers))
	for _, barber := range b.Barbers {
		if barber.Active {
			ids = append(ids, barber.ID)
		}
	}
	return ids
}

// IsManager проверяет, что пользователь является менеджером бизнеса
func (b *Business) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Service услуга из каталога бизнеса
type Service struct {
	ID              int64  `json:"id"`
	BusinessID      int64  `json:"businessId"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int64  `json:"priceCents"`
	Active          bool   `json:"active"`
}

// ErrorResponse модель ошибки от BusinessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
