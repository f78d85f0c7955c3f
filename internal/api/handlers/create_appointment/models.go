package create_appointment

import (
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	createAppointment "github.com/trimly/Trimly-SchedulingService/internal/usecase/create_appointment"
	"github.com/trimly/Trimly-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BusinessID      int64   `json:"businessId"`
	BarberID        int64   `json:"barberId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	BusinessID      int64  `json:"businessId"`
	BarberID        int64  `json:"barberId"`
	ServiceID       int64  `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ServiceName        string  `json:"serviceName"`
	OriginalPriceCents int64   `json:"originalPriceCents"`
	FinalPriceCents    int64   `json:"finalPriceCents"`
	DiscountCents      int64   `json:"discountCents"`
	AppliedPromoID     *string `json:"appliedPromoId,omitempty"`
	Notes              *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	apptDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:   clientID,
		BusinessID: r.BusinessID,
		BarberID:   r.BarberID,
		ServiceID:  r.ServiceID,
		Date:       apptDate,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		BusinessID:         resp.BusinessID,
		BarberID:           resp.BarberID,
		ServiceID:          resp.ServiceID,
		AppointmentDate:    resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		ServiceName:        resp.ServiceName,
		OriginalPriceCents: resp.OriginalPriceCents,
		FinalPriceCents:    resp.FinalPriceCents,
		DiscountCents:      resp.DiscountCents,
		AppliedPromoID:     resp.AppliedPromoID,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
