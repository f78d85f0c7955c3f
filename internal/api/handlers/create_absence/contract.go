package create_absence

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/service/absences/models"
)

type AbsenceService interface {
	Create(ctx context.Context, req *models.CreateAbsenceRequest) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
