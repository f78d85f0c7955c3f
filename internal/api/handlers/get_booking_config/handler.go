package get_booking_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/service/config"
	"github.com/trimly/Trimly-SchedulingService/internal/service/config/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
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

// Handle GET /api/v1/businesses/{businessId}/booking-config
// Возвращает все конфигурации бизнеса: общую и per-barber
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/booking-config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceReq := &models.GetConfigRequest{BusinessID: businessID}

	result, err := h.service.Get(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, config.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id}/booking-config - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}

		h.logger.Error("GET /businesses/{id}/booking-config - Failed to get config: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/booking-config - Config retrieved: business_id=%d, count=%d",
		businessID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
