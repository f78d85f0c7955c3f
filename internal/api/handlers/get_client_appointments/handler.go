package get_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	"github.com/trimly/Trimly-SchedulingService/internal/service/appointments"
	"github.com/trimly/Trimly-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус записи"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientIDStr := vars["clientId"]

	clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/appointments - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{clientId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Клиент видит только свои записи
	if userID != clientID {
		h.logger.Warn("GET /clients/{clientId}/appointments - Access denied: client_id=%d, user_id=%d",
			clientID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetClientAppointmentsRequest{
		ClientID: clientID,
		Status:   statusPtr,
	}

	result, err := h.service.GetClientAppointments(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /clients/{clientId}/appointments - Invalid status: client_id=%d, status=%s",
				clientID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}

		h.logger.Error("GET /clients/{clientId}/appointments - Failed to get appointments: client_id=%d, error=%v",
			clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{clientId}/appointments - Appointments retrieved: client_id=%d, count=%d",
		clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
