package get_booking_config

import (
	"context"

	"github.com/trimly/Trimly-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
