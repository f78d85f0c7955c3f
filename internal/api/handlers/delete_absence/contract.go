package delete_absence

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/service/absences/models"
)

type AbsenceService interface {
	Delete(ctx context.Context, req *models.DeleteAbsenceRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
