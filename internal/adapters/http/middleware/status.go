// Package middleware holds the inbound HTTP pipeline. The router applies it
// in this order:
//
//	Recovery → RequestID → CorrelationID → Identity → OpenTelemetry → Logging → Timeout → handler
//
// Identity must precede OpenTelemetry and Logging so spans and request logs
// carry the caller.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// statusRecorder remembers the status a handler answered with. Handlers
// that never call WriteHeader answer 200.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	started bool
}

func recordStatus(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.started {
		return
	}
	s.status = code
	s.started = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.started = true
	return s.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach Flush and Hijack.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// route returns the chi pattern that served r, such as
// /api/v1/projects/{id}, or the raw path outside a chi router. The pattern
// is only known once the handler ran.
func route(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
