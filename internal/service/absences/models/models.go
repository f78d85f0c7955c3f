package models

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
)

// Request модели

// CreateAbsenceRequest запрос на создание периода отсутствия
// Для AllDay = true границы интервала берутся из дат StartsAt/EndsAt,
// время внутри дня игнорируется.
type CreateAbsenceRequest struct {
	UserID     int64     `json:"userId"`
	BusinessID int64     `json:"businessId"`
	BarberID   int64     `json:"barberId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	AllDay     bool      `json:"allDay"`
	Reason     *string   `json:"reason,omitempty"`
}

// DeleteAbsenceRequest запрос на удаление периода отсутствия
type DeleteAbsenceRequest struct {
	UserID     int64 `json:"userId"`
	BusinessID int64 `json:"businessId"`
	AbsenceID  int64 `json:"absenceId"`
}

// ListAbsencesRequest запрос на получение отсутствий бизнеса
type ListAbsencesRequest struct {
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	BarberID   *int64 `json:"barberId,omitempty"`
}

// Response модели

// AbsenceResponse ответ с данными периода отсутствия
type AbsenceResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	BarberID   int64     `json:"barberId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	AllDay     bool      `json:"allDay"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AbsenceListResponse ответ со списком отсутствий
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// Методы конвертации

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(a *domain.StaffAbsence) *AbsenceResponse {
	if a == nil {
		return nil
	}

	return &AbsenceResponse{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		BarberID:   a.BarberID,
		StartsAt:   a.StartsAt,
		EndsAt:     a.EndsAt,
		AllDay:     a.AllDay,
		Reason:     a.Reason,
		CreatedAt:  a.CreatedAt,
	}
}

// FromDomainAbsenceList конвертирует список domain моделей в DTO
func FromDomainAbsenceList(absences []*domain.StaffAbsence) *AbsenceListResponse {
	resp := &AbsenceListResponse{
		Absences: make([]AbsenceResponse, 0, len(absences)),
	}

	for _, absence := range absences {
		if absenceResp := FromDomainAbsence(absence); absenceResp != nil {
			resp.Absences = append(resp.Absences, *absenceResp)
		}
	}

	return resp
}
