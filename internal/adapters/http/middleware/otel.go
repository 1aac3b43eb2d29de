package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/go-business-objects/internal/adapters/http"

// OpenTelemetry returns middleware that continues the caller's W3C trace in
// a server span named after the matched route, and records the server
// request metrics. A nil metrics records spans only.
//
// The caller is only known when Identity ran first; the span then carries
// enduser.id.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			rec := recordStatus(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(rec, r)

			pattern := route(r)
			span.SetName("HTTP " + r.Method + " " + pattern)
			span.SetAttributes(
				attribute.String("http.route", pattern),
				attribute.Int("http.status_code", rec.status),
			)
			if u := rules.UserFromContext(r.Context()); u != nil {
				span.SetAttributes(attribute.String("enduser.id", u.UserCode()))
			}
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}

			metrics.RecordServerRequest(ctx, r.Method, pattern, rec.status, time.Since(start))
		})
	}
}
