package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/trimly/Trimly-SchedulingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimit ограничивает общую частоту запросов на публичных ручках
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
