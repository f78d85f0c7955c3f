package update_booking_config

import (
	"github.com/trimly/Trimly-SchedulingService/internal/service/config/models"
)

// UpdateBookingConfigRequest HTTP request model
// BarberID = null означает общую конфигурацию бизнеса
type UpdateBookingConfigRequest struct {
	BarberID            *int64 `json:"barberId,omitempty"`
	SlotIntervalMinutes int    `json:"slotIntervalMinutes"`
	BufferMinutes       int    `json:"bufferMinutes"`
	AdvanceBookingDays  int    `json:"advanceBookingDays"`
	MinNoticeMinutes    int    `json:"minNoticeMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingConfigRequest) ToServiceRequest(businessID, userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:              userID,
		BusinessID:          businessID,
		BarberID:            r.BarberID,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		BufferMinutes:       r.BufferMinutes,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		MinNoticeMinutes:    r.MinNoticeMinutes,
	}
}
