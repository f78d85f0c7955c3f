package create_appointment

import (
	"context"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	ListForBarberOnDate(ctx context.Context, businessID, barberID int64, date time.Time) ([]*domain.StaffAbsence, error)
}

// ConfigRepository интерфейс репозитория конфигурации бронирования
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, businessID int64, barberID *int64) (*domain.BookingConfig, error)
}

// PromoRuleRepository интерфейс репозитория промо-правил
type PromoRuleRepository interface {
	ListByBusiness(ctx context.Context, businessID int64, enabledOnly bool) ([]*domain.PromoRule, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*businessservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
