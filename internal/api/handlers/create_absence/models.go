package create_absence

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/service/absences/models"
)

// CreateAbsenceRequest HTTP request model
// Время передается в формате RFC3339, для allDay учитываются только даты
type CreateAbsenceRequest struct {
	BarberID int64     `json:"barberId"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	AllDay   bool      `json:"allDay"`
	Reason   *string   `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAbsenceRequest) ToServiceRequest(businessID, userID int64) *models.CreateAbsenceRequest {
	return &models.CreateAbsenceRequest{
		UserID:     userID,
		BusinessID: businessID,
		BarberID:   r.BarberID,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		AllDay:     r.AllDay,
		Reason:     r.Reason,
	}
}
