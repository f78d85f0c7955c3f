package absences

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/domain"
	"github.com/trimly/Trimly-SchedulingService/internal/integrations/businessservice"
)

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	Create(ctx context.Context, absence *domain.StaffAbsence) (*domain.StaffAbsence, error)
	Delete(ctx context.Context, businessID, id int64) error
	ListForBusiness(ctx context.Context, businessID int64, barberID *int64) ([]*domain.StaffAbsence, error)
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
