package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/trimly/Trimly-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса, ожидаются serviceId, date (YYYY-MM-DD) и опциональный barberId"
	msgBusinessNotFound  = "бизнес не найден"
	msgBarberNotFound    = "мастер не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceInactive   = "услуга недоступна"
	msgInvalidDate       = "некорректная дата"
	msgDateTooFar        = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query params: serviceId и date (обязательные), barberId (опциональный -
// без него доступность объединяется по всем активным мастерам)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(businessID, query.Get("barberId"), query.Get("serviceId"), query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Barber not found: business_id=%d, barber_id=%d",
				businessID, useCaseReq.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Service not found: business_id=%d, service_id=%d",
				businessID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /businesses/{id}/available-slots - Service inactive: business_id=%d, service_id=%d",
				businessID, useCaseReq.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid date: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /businesses/{id}/available-slots - Date too far in future: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid input: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to get slots: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{id}/available-slots - Slots retrieved: business_id=%d, barber_id=%d, slots=%d",
		businessID, useCaseReq.BarberID, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
