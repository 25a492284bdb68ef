package httppresentation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/poskadesign/events/observability"
	"github.com/poskadesign/events/observability/logctx"
	"go.opentelemetry.io/otel/trace"
)

// ObservabilityMiddleware combines:
// - request-scoped logger injection (dynamic fields only)
// - X-Request-ID generation + echo
// - HTTP metrics (counter + histogram) with low-cardinality labels
//
// It expects the span started by withTrace to already be on the context.
func ObservabilityMiddleware(
	base observability.Logger,
	requestID func(*http.Request) string,
	tenantID func(*http.Request) string,
	tel observability.Telemetry,
) func(http.Handler) http.Handler {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	if base == nil {
		base = tel.Logger()
	}
	requests := tel.Counter(observability.MHTTPRequests)
	if requests == nil {
		requests = observability.NopCounter()
	}
	durations := tel.Histogram(observability.MHTTPRequestDuration)
	if durations == nil {
		durations = observability.NopHistogram()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sc := trace.SpanContextFromContext(ctx)

			// --- Request/Tenant IDs
			rid := ""
			if requestID != nil {
				rid = requestID(r)
			}
			if rid == "" {
				rid = uuid.NewString()
			}
			tid := ""
			if tenantID != nil {
				tid = tenantID(r)
			}
			w.Header().Set(headerRequestID, rid)

			// --- Build request-scoped logger (dynamic fields only)
			fields := []observability.Field{observability.F("request_id", rid)}
			if tid != "" {
				fields = append(fields, observability.F("tenant_id", tid))
			}
			if sc.IsValid() {
				fields = append(fields,
					observability.F("trace_id", sc.TraceID().String()),
					observability.F("span_id", sc.SpanID().String()),
				)
			}
			ctx = logctx.With(ctx, base.With(fields...))

			// --- Metrics wrap to capture final status + duration
			start := time.Now()
			lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lrw, r.WithContext(ctx))

			labels := []observability.Label{
				observability.L("method", r.Method),
				observability.L("route", routeFromContext(ctx)),
				observability.L("status", strconv.Itoa(lrw.status)),
			}
			requests.Add(1, labels...)
			durations.Observe(time.Since(start).Seconds(), labels...)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
