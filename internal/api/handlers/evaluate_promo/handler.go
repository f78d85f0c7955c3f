package evaluate_promo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
	evaluatePromo "github.com/trimly/Trimly-SchedulingService/internal/usecase/evaluate_promo"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса, ожидаются serviceId, date (YYYY-MM-DD) и time (HH:MM)"
	msgBusinessNotFound  = "бизнес не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase EvaluatePromoUseCase
	logger  Logger
}

func NewHandler(useCase EvaluatePromoUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/promo-evaluation
// Query params: serviceId, date, time (обязательные)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/promo-evaluation - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(businessID, query.Get("serviceId"), query.Get("date"), query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/promo-evaluation - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, evaluatePromo.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/promo-evaluation - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, evaluatePromo.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/promo-evaluation - Service not found: business_id=%d, service_id=%d",
				businessID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, evaluatePromo.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/promo-evaluation - Invalid input: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/promo-evaluation - Failed to evaluate promo: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{id}/promo-evaluation - Evaluated: business_id=%d, service_id=%d, reason=%s",
		businessID, useCaseReq.ServiceID, response.Reason)
	handlers.RespondJSON(w, http.StatusOK, response)
}
