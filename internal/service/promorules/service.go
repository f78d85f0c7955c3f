package promorules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	businessClient "github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules/models"
)

// Service сервис для управления промо-правилами бизнеса
type Service struct {
	ruleRepo       PromoRuleRepository
	businessClient BusinessServiceClient
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса промо-правил
func NewService(
	ruleRepo PromoRuleRepository,
	businessClient BusinessServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:       ruleRepo,
		businessClient: businessClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// List получает набор промо-правил бизнеса (включая отключенные)
// Публичная операция: клиенты видят действующие акции до бронирования
func (s *Service) List(ctx context.Context, req *models.ListRulesRequest) (*models.PromoRuleListResponse, error) {
	s.logger.Info("List: fetching promo rules for business=%d", req.BusinessID)

	// Проверяем существование бизнеса
	if _, err := s.businessClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("List: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("List: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - failed to get business: %v", ErrInternal, err)
	}

	rules, err := s.ruleRepo.ListByBusiness(ctx, req.BusinessID, false)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d promo rules for business=%d", len(rules), req.BusinessID)
	return models.FromDomainRuleList(rules), nil
}

// ReplaceSet атомарно заменяет набор промо-правил бизнеса
// Валидация fail-fast: если хотя бы одно правило некорректно,
// набор отклоняется целиком и данные не меняются.
// Доступно только менеджерам бизнеса.
func (s *Service) ReplaceSet(ctx context.Context, req *models.ReplaceRulesRequest) (*models.PromoRuleListResponse, error) {
	s.logger.Info("ReplaceSet: replacing promo rules for business=%d, user=%d, count=%d",
		req.BusinessID, req.UserID, len(req.Rules))

	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Валидируем и конвертируем все правила до записи
	rules := make([]*domain.PromoRule, 0, len(req.Rules))
	seenIDs := make(map[string]struct{}, len(req.Rules))
	for i := range req.Rules {
		rule, err := s.toDomainRule(req.BusinessID, &req.Rules[i])
		if err != nil {
			s.logger.Warn("ReplaceSet: invalid rule at index %d for business=%d: %v", i, req.BusinessID, err)
			return nil, err
		}
		if _, ok := seenIDs[rule.ID]; ok {
			s.logger.Warn("ReplaceSet: duplicate rule id=%s at index %d for business=%d", rule.ID, i, req.BusinessID)
			return nil, fmt.Errorf("%w: duplicate rule id %s", ErrInvalidRule, rule.ID)
		}
		seenIDs[rule.ID] = struct{}{}
		rules = append(rules, rule)
	}

	// Замена набора выполняется в транзакции: удаление и вставка атомарны
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.ruleRepo.ReplaceForBusiness(txCtx, req.BusinessID, rules)
	})
	if err != nil {
		s.logger.Error("ReplaceSet: failed to replace rules for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ReplaceSet - repository error: %v", ErrInternal, err)
	}

	// Перечитываем сохранённый набор, чтобы вернуть серверные поля (created_at, updated_at)
	saved, err := s.ruleRepo.ListByBusiness(ctx, req.BusinessID, false)
	if err != nil {
		s.logger.Error("ReplaceSet: failed to reload rules for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ReplaceSet - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSet: successfully replaced promo rules for business=%d, count=%d", req.BusinessID, len(saved))
	return models.FromDomainRuleList(saved), nil
}

// toDomainRule валидирует входное правило и конвертирует его в domain модель
func (s *Service) toDomainRule(businessID int64, input *models.PromoRuleInput) (*domain.PromoRule, error) {
	if input.Label == "" {
		return nil, fmt.Errorf("%w: label must not be empty", ErrInvalidRule)
	}
	if len(input.Label) > domain.MaxPromoLabelLength {
		return nil, fmt.Errorf("%w: label must be at most %d characters", ErrInvalidRule, domain.MaxPromoLabelLength)
	}
	if input.StartHour < 0 || input.EndHour > 24 || input.StartHour >= input.EndHour {
		return nil, fmt.Errorf("%w: hour window must satisfy 0 <= startHour < endHour <= 24", ErrInvalidRule)
	}
	if len(input.Days) == 0 {
		return nil, fmt.Errorf("%w: days must not be empty", ErrInvalidRule)
	}
	for _, d := range input.Days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: day %d out of range 0..6", ErrInvalidRule, d)
		}
	}
	if input.Value <= 0 {
		return nil, fmt.Errorf("%w: value must be positive", ErrInvalidRule)
	}

	discountType := domain.DiscountType(input.Type)
	switch discountType {
	case domain.DiscountPercent:
		if input.Value > 100 {
			return nil, fmt.Errorf("%w: percent value must be at most 100", ErrInvalidRule)
		}
	case domain.DiscountFixed:
		// Любая положительная сумма допустима, скидка обрезается по цене услуги
	default:
		return nil, fmt.Errorf("%w: unknown discount type %q", ErrInvalidRule, input.Type)
	}

	id := uuid.NewString()
	if input.ID != nil {
		parsed, err := uuid.Parse(*input.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: id must be a valid UUID: %v", ErrInvalidRule, err)
		}
		id = parsed.String()
	}

	return &domain.PromoRule{
		ID:         id,
		BusinessID: businessID,
		Label:      input.Label,
		Enabled:    input.Enabled,
		Priority:   input.Priority,
		Days:       input.Days,
		StartHour:  input.StartHour,
		EndHour:    input.EndHour,
		Type:       discountType,
		Value:      input.Value,
		ServiceIDs: input.ServiceIDs,
	}, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
