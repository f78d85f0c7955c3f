package evaluate_promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/promo"
	"github.com/trimly/Trimly-SchedulingService/pkg/ptr"
)

// UseCase use case для предварительной оценки цены с промо-правилами
// Ничего не сохраняет: клиент видит цену со скидкой до создания записи
type UseCase struct {
	promoRepo      PromoRuleRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	promoRepo PromoRuleRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		promoRepo:      promoRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// Execute выполняет use case оценки промо-правил
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EvaluatePromo: business=%d, service=%d, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EvaluatePromo: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу (цена берётся из каталога)
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, businessClient.ErrBusinessNotFound):
			uc.logger.Warn("EvaluatePromo: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		case errors.Is(err, businessClient.ErrServiceNotFound):
			uc.logger.Warn("EvaluatePromo: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		default:
			uc.logger.Error("EvaluatePromo: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 3. Получаем включённые промо-правила бизнеса
	rules, err := uc.promoRepo.ListByBusiness(ctx, req.BusinessID, true)
	if err != nil {
		uc.logger.Error("EvaluatePromo: failed to get promo rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get promo rules: %v", ErrInternal, err)
	}

	// 4. Оцениваем правила против контекста записи
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	promoCtx := promo.Context{
		Day:       int(req.Date.Weekday()),
		Hour:      startMinutes / 60,
		ServiceID: req.ServiceID,
	}

	ruleValues := make([]domain.PromoRule, 0, len(rules))
	for _, rule := range rules {
		ruleValues = append(ruleValues, *rule)
	}

	evaluation := promo.Evaluate(ruleValues, promoCtx, service.PriceCents)

	resp := &Response{
		BusinessID:         req.BusinessID,
		ServiceID:          req.ServiceID,
		Applied:            evaluation.Applied,
		OriginalPriceCents: evaluation.OriginalPriceCents,
		FinalPriceCents:    evaluation.FinalPriceCents,
		DiscountCents:      evaluation.DiscountCents,
		Reason:             string(evaluation.Reason),
	}

	if evaluation.Applied {
		resp.RuleID = ptr.Ptr(evaluation.Rule.ID)
		resp.RuleLabel = ptr.Ptr(evaluation.Rule.Label)
	}

	uc.logger.Info("EvaluatePromo: business=%d, service=%d, reason=%s, price %d -> %d",
		req.BusinessID, req.ServiceID, evaluation.Reason, evaluation.OriginalPriceCents, evaluation.FinalPriceCents)

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
