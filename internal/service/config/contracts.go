package config

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// ConfigRepository интерфейс репозитория конфигурации бронирования
type ConfigRepository interface {
	GetByBusinessAndBarber(ctx context.Context, businessID int64, barberID *int64) (*domain.BookingConfig, error)
	GetAllByBusiness(ctx context.Context, businessID int64) ([]*domain.BookingConfig, error)
	Upsert(ctx context.Context, config *domain.BookingConfig) (*domain.BookingConfig, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
