package update_promo_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	"github.com/trimly/Trimly-SchedulingService/internal/api/middleware"
	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidRule        = "некорректное промо-правило в наборе"
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

// Handle PUT /api/v1/businesses/{businessId}/promo-rules
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/promo-rules - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/promo-rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePromoRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/promo-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest(businessID, userID)

	result, err := h.service.ReplaceSet(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, promorules.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/promo-rules - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, promorules.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/promo-rules - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, promorules.ErrInvalidRule):
			h.logger.Warn("PUT /businesses/{id}/promo-rules - Invalid rule: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("PUT /businesses/{id}/promo-rules - Failed to replace rules: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/promo-rules - Rules replaced: business_id=%d, count=%d",
		businessID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
