package list_absences

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/service/absences/models"
)

type AbsenceService interface {
	List(ctx context.Context, req *models.ListAbsencesRequest) (*models.AbsenceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
