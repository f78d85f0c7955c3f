package update_promo_rules

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/service/promorules/models"
)

type PromoRuleService interface {
	ReplaceSet(ctx context.Context, req *models.ReplaceRulesRequest) (*models.PromoRuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
