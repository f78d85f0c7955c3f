package create_appointment

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64            // ID клиента
	BusinessID int64            // ID бизнеса
	BarberID   int64            // ID мастера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ClientID        int64            // ID клиента
	BusinessID      int64            // ID бизнеса
	BarberID        int64            // ID мастера
	ServiceID       int64            // ID услуги
	AppointmentDate time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные
	ServiceName        string  // Название услуги
	OriginalPriceCents int64   // Цена услуги на момент записи
	FinalPriceCents    int64   // Цена после применения промо-правила
	DiscountCents      int64   // Размер скидки
	AppliedPromoID     *string // ID применённого промо-правила
	Notes              *string // Пожелания клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
