package domain

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusInProgress          AppointmentStatus = "in_progress"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByClient   AppointmentStatus = "cancelled_by_client"
	StatusCancelledByBusiness AppointmentStatus = "cancelled_by_business"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment represents a booked service appointment with a specific barber
type Appointment struct {
	ID              int64
	ClientID        int64
	BusinessID      int64
	BarberID        int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName        string
	OriginalPriceCents int64
	FinalPriceCents    int64
	AppliedPromoID     *string
	Notes              *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time window
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledByBusiness &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledByBusiness
}

// DiscountCents возвращает размер применённой скидки
func (a *Appointment) DiscountCents() int64 {
	return a.OriginalPriceCents - a.FinalPriceCents
}

// BusinessAppointmentsFilter фильтр для получения записей бизнеса
type BusinessAppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	BarberID        *int64             // Фильтр по мастеру (опционально, если nil - все мастера)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show записи
}
