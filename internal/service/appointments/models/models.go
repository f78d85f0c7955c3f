package models

import (
	"errors"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetBusinessAppointmentsRequest запрос на получение записей бизнеса
type GetBusinessAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	BusinessID      int64      `json:"businessId"`
	BarberID        *int64     `json:"barberId,omitempty"`        // Фильтр по мастеру (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessAppointmentsRequest) ToDomainFilter() (domain.BusinessAppointmentsFilter, error) {
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      r.BusinessID,
		BarberID:        r.BarberID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	BusinessID      int64  `json:"businessId"`
	BarberID        int64  `json:"barberId"`
	ServiceID       int64  `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`       // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName        string  `json:"serviceName"`
	OriginalPriceCents int64   `json:"originalPriceCents"`
	FinalPriceCents    int64   `json:"finalPriceCents"`
	DiscountCents      int64   `json:"discountCents"`
	AppliedPromoID     *string `json:"appliedPromoId,omitempty"`
	Notes              *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		BusinessID:         a.BusinessID,
		BarberID:           a.BarberID,
		ServiceID:          a.ServiceID,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		OriginalPriceCents: a.OriginalPriceCents,
		FinalPriceCents:    a.FinalPriceCents,
		DiscountCents:      a.DiscountCents(),
		AppliedPromoID:     a.AppliedPromoID,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	// Валидируем статус
	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByBusiness,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
