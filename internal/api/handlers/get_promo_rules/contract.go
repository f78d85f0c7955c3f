package get_promo_rules

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules/models"
)

type PromoRuleService interface {
	List(ctx context.Context, req *models.ListRulesRequest) (*models.PromoRuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
