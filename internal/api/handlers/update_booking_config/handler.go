package update_booking_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	"github.com/trimly/Trimly-SchedulingService/internal/service/config"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgBarberNotFound     = "мастер не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные конфигурации"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/booking-config
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/booking-config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/booking-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/booking-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest(businessID, userID)

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/booking-config - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, config.ErrBarberNotFound):
			h.logger.Warn("PUT /businesses/{id}/booking-config - Barber not found: business_id=%d, barber_id=%v",
				businessID, req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/booking-config - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/booking-config - Invalid data: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /businesses/{id}/booking-config - Failed to update config: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/booking-config - Config updated: business_id=%d, config_id=%d",
		businessID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
