package create_absence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	"github.com/trimly/Trimly-SchedulingService/internal/service/absences"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgBarberNotFound     = "мастер не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInterval    = "некорректный интервал отсутствия"
)

type Handler struct {
	service AbsenceService
	logger  Logger
}

func NewHandler(service AbsenceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/absences
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/absences - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/absences - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest(businessID, userID)

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/absences - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, absences.ErrBarberNotFound):
			h.logger.Warn("POST /businesses/{id}/absences - Barber not found: business_id=%d, barber_id=%d",
				businessID, req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/absences - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, absences.ErrInvalidInterval):
			h.logger.Warn("POST /businesses/{id}/absences - Invalid interval: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /businesses/{id}/absences - Failed to create absence: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/absences - Absence created: absence_id=%d, business_id=%d, barber_id=%d",
		result.ID, businessID, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
