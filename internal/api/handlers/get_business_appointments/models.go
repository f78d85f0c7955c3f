package get_business_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(businessID, userID int64, query url.Values) (*models.GetBusinessAppointmentsRequest, error) {
	req := &models.GetBusinessAppointmentsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if barberIDStr := query.Get("barberId"); barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.BarberID = &barberID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
