package get_available_slots

import (
	"strconv"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	getAvailableSlots "github.com/trimly/Trimly-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	Datetime        string `json:"datetime"`  // ISO 8601, "2025-10-15T10:00:00Z"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// AvailableSlotsResponse HTTP ответ со слотами на дату
type AvailableSlotsResponse struct {
	Date       string         `json:"date"` // "2025-10-15"
	BusinessID int64          `json:"businessId"`
	BarberID   int64          `json:"barberId,omitempty"` // Отсутствует при запросе без мастера
	ServiceID  int64          `json:"serviceId"`
	Slots      []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос use case из URL и query параметров.
// Пустой barberId допустим: слоты считаются по всем активным мастерам.
func ToUseCaseRequest(businessID int64, barberIDStr, serviceIDStr, dateStr string) (*getAvailableSlots.Request, error) {
	var barberID int64
	if barberIDStr != "" {
		var err error
		barberID, err = strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		BarberID:   barberID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			Datetime:        slot.StartsAt.Format(time.RFC3339),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		BusinessID: resp.BusinessID,
		BarberID:   resp.BarberID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}
