package evaluate_promo

import (
	"context"

	evaluatePromo "github.com/trimly/Trimly-SchedulingService/internal/usecase/evaluate_promo"
)

type EvaluatePromoUseCase interface {
	Execute(ctx context.Context, req *evaluatePromo.Request) (*evaluatePromo.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
