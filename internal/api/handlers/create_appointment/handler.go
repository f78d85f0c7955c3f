package create_appointment

import (
	"errors"
	"net/http"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	createAppointment "github.com/trimly/Trimly-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgBusinessNotFound    = "бизнес не найден"
	msgBarberNotFound      = "мастер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceInactive     = "услуга недоступна"
	msgSlotTaken           = "выбранный временной слот занят"
	msgBusinessClosed      = "бизнес закрыт в выбранную дату"
	msgInvalidDate         = "некорректная дата записи"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgOutsideWorkingHours = "слот выходит за рабочие часы"
	msgTooLateToBook       = "слишком поздно для записи на этот слот"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Клиентом записи становится авторизованный пользователь
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: client_id=%d, business_id=%d, barber_id=%d",
				clientID, req.BusinessID, req.BarberID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /appointments - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: business_id=%d, barber_id=%d",
				req.BusinessID, req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: business_id=%d, service_id=%d",
				req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: business_id=%d, service_id=%d",
				req.BusinessID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrBusinessClosed):
			h.logger.Warn("POST /appointments - Business closed: business_id=%d, date=%s",
				req.BusinessID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: business_id=%d, date=%s",
				req.BusinessID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: business_id=%d, date=%s",
				req.BusinessID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: business_id=%d, time=%s",
				req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: business_id=%d, time=%s",
				req.BusinessID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, business_id=%d, error=%v",
				clientID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, business_id=%d",
		result.ID, clientID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
