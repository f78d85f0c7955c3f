package get_available_slots

import (
	"context"
	"time"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByBusinessWithFilter получает записи бизнеса на конкретную дату и мастера
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	// ListForBarberOnDate получает отсутствия мастера, пересекающие указанный день
	ListForBarberOnDate(ctx context.Context, businessID, barberID int64, date time.Time) ([]*domain.StaffAbsence, error)
}

// ConfigRepository интерфейс репозитория конфигурации бронирования
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, businessID int64, barberID *int64) (*domain.BookingConfig, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*businessservice.Service, error)
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
