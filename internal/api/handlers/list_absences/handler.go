package list_absences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	"github.com/trimly/Trimly-SchedulingService/internal/service/absences"
	"github.com/trimly/Trimly-SchedulingService/internal/service/absences/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBarberID   = "некорректный ID мастера"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/businesses/{businessId}/absences
// Query params: barberId (опционально)
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/absences - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/absences - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.ListAbsencesRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if barberIDStr := r.URL.Query().Get("barberId"); barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/absences - Invalid barber ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		serviceReq.BarberID = &barberID
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/absences - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/absences - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /businesses/{id}/absences - Failed to get absences: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/absences - Absences retrieved: business_id=%d, count=%d",
		businessID, len(result.Absences))
	handlers.RespondJSON(w, http.StatusOK, result)
}
