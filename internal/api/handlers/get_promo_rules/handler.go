package get_promo_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules"
	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	service PromoRuleService
	logger  Logger
}

func NewHandler(service PromoRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/promo-rules
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/promo-rules - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceReq := &models.ListRulesRequest{BusinessID: businessID}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, promorules.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id}/promo-rules - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}

		h.logger.Error("GET /businesses/{id}/promo-rules - Failed to get rules: business_id=%d, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/promo-rules - Rules retrieved: business_id=%d, count=%d",
		businessID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
