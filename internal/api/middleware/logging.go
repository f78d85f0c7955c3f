package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Logging логирует завершение каждого HTTP запроса вместе с его
// идентификатором, присвоенным RequestID middleware. По request_id
// строки access-лога связываются с логами обработчиков.
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			requestID, _ := GetRequestID(r.Context())
			log.Info("%s %s - status=%d, duration=%s, request_id=%s",
				r.Method, r.URL.Path, sw.status, time.Since(start), requestID)
		})
	}
}
