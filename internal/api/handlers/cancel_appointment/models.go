package cancel_appointment

import (
	"github.com/trimly/Trimly-SchedulingService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(userID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
