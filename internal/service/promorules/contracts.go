package promorules

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// PromoRuleRepository интерфейс репозитория промо-правил
type PromoRuleRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, enabledOnly bool) ([]*domain.PromoRule, error)
	ReplaceForBusiness(ctx context.Context, businessID int64, rules []*domain.PromoRule) error
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
