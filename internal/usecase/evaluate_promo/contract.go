package evaluate_promo

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// PromoRuleRepository интерфейс репозитория промо-правил
type PromoRuleRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, enabledOnly bool) ([]*domain.PromoRule, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*businessservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
