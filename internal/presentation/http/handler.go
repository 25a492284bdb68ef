package httppresentation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poskadesign/events/event"
	"github.com/poskadesign/events/internal/widget"
	"github.com/poskadesign/events/observability"
	"github.com/poskadesign/events/observability/logctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	headerTenantID       = "X-Tenant-ID"

	maxInputLen = 4096
)

var (
	errEmptyInput   = errors.New("input is required")
	errInputTooLong = errors.New("input is too long")
)

type Handler struct {
	log observability.Logger
	tel observability.Telemetry
}

func NewHandler(logger observability.Logger, tel observability.Telemetry) *Handler {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = tel.Logger()
	}
	return &Handler{
		log: baseLogger.With(observability.F("component", componentHTTPHandler)),
		tel: tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Trace → ObservabilityMiddleware (request logger + metrics) → Access log → Handler
	h.muxHandle(mux, http.MethodPost, "/reverse", h.handleReverse)
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Store stable route template for low-cardinality labels
		ctx := contextWithRoute(r.Context(), method+" "+route)
		r = r.WithContext(ctx)

		wrapped := h.withTrace(
			ObservabilityMiddleware(
				h.log,
				func(r *http.Request) string {
					return r.Header.Get(headerRequestID)
				},
				func(r *http.Request) string {
					return r.Header.Get(headerTenantID)
				},
				h.tel,
			)(
				h.withAccessLog(http.HandlerFunc(handler)),
			),
		)
		wrapped.ServeHTTP(w, r)
	})
}

type reverseRequest struct {
	Input string `json:"input"`
}

type reverseResponse struct {
	Reversed string `json:"reversed"`
	// Notifications holds one line per subscriber call, in call order.
	Notifications []string `json:"notifications"`
}

// handleReverse runs a fresh widget consumer for the request and reports
// what its subscribers wrote.
func (h *Handler) handleReverse(w http.ResponseWriter, r *http.Request) {
	var req reverseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validateInput(req.Input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var out bytes.Buffer
	c := widget.NewConsumer(&out, logctx.FromOr(r.Context(), h.log), event.WithTelemetry(h.tel))
	defer c.Close()
	c.Run(r.Context(), req.Input)

	writeJSON(w, http.StatusOK, reverseResponse{
		Reversed:      widget.Reverse(req.Input),
		Notifications: splitLines(out.String()),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request, continuing a W3C parent
// when the caller sent one.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		spanName := route
		if spanName == "unknown" {
			spanName = r.Method + " " + r.URL.Path
		}
		template := route
		if idx := strings.Index(template, " "); idx >= 0 {
			template = template[idx+1:]
		}
		if template == "unknown" || template == "" {
			template = r.URL.Path
		}

		ctxWithSpan, span := h.tel.Tracer().Start(parentCtx,
			spanName,
			attribute.String("http.method", r.Method),
			attribute.String("http.route", template),
			attribute.String("http.target", r.URL.Path),
			attribute.String("http.user_agent", r.UserAgent()),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

func validateInput(s string) error {
	switch {
	case s == "":
		return errEmptyInput
	case utf8.RuneCountInString(s) > maxInputLen:
		return errInputTooLong
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
