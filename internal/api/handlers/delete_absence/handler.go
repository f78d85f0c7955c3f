package delete_absence

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
	msgInvalidAbsenceID  = "некорректный ID периода отсутствия"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgAbsenceNotFound   = "период отсутствия не найден"
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

// Handle DELETE /api/v1/businesses/{businessId}/absences/{absenceId}
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/absences/{absenceId} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	absenceID, err := strconv.ParseInt(vars["absenceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/absences/{absenceId} - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{id}/absences/{absenceId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.DeleteAbsenceRequest{
		UserID:     userID,
		BusinessID: businessID,
		AbsenceID:  absenceID,
	}

	err = h.service.Delete(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{id}/absences/{absenceId} - Business not found: business_id=%d",
				businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, absences.ErrAbsenceNotFound):
			h.logger.Warn("DELETE /businesses/{id}/absences/{absenceId} - Absence not found: absence_id=%d",
				absenceID)
			handlers.RespondNotFound(w, msgAbsenceNotFound)

		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/absences/{absenceId} - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{id}/absences/{absenceId} - Failed to delete absence: absence_id=%d, error=%v",
				absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/absences/{absenceId} - Absence deleted: absence_id=%d, business_id=%d",
		absenceID, businessID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
