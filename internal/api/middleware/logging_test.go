package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	lines []string
}

func (l *captureLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func TestRequestID_GeneratesIDAndExposesIt(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetRequestID(r.Context())
		require.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, req)

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_KeepsClientProvidedID(t *testing.T) {
	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/1", nil)
	req.Header.Set("X-Request-ID", "client-req-42")
	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, req)

	assert.Equal(t, "client-req-42", gotID)
	assert.Equal(t, "client-req-42", rec.Header().Get("X-Request-ID"))
}

func TestLogging_LineCarriesRequestIDAndStatus(t *testing.T) {
	log := &captureLogger{}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// Порядок как в main.go: RequestID снаружи, Logging внутри
	handler := RequestID(Logging(log)(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/1/promo-rules", nil)
	req.Header.Set("X-Request-ID", "client-req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "GET /api/v1/businesses/1/promo-rules")
	assert.Contains(t, log.lines[0], "status=404")
	assert.Contains(t, log.lines[0], "request_id=client-req-42")
}
