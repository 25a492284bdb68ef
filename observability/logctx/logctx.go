package logctx

import (
	"context"

	"github.com/google/uuid"
	"github.com/poskadesign/events/observability"
	"go.opentelemetry.io/otel/trace"
)

type loggerKey struct{}

// With stores the provided logger on the context for request-scoped logging.
func With(ctx context.Context, logger observability.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From retrieves a logger from the context if present.
func From(ctx context.Context) observability.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(observability.Logger)
	return logger
}

// FromOr returns the context logger when available, otherwise falls back to the supplied logger.
func FromOr(ctx context.Context, fallback observability.Logger) observability.Logger {
	if logger := From(ctx); logger != nil {
		return logger
	}
	return fallback
}

// WithRunContext injects a run-scoped logger for executions that do not start
// from an inbound request. Dynamic fields only: run_id (generated if empty),
// trace_id/span_id from the span in ctx when valid, plus caller-provided
// low-cardinality attributes.
func WithRunContext(
	ctx context.Context,
	base observability.Logger,
	attrs map[string]string,
) context.Context {
	if base == nil {
		base = observability.NopLogger()
	}

	fields := make([]observability.Field, 0, len(attrs)+3)

	runID := attrs["run_id"]
	if runID == "" {
		runID = uuid.NewString()
	}
	fields = append(fields, observability.F("run_id", runID))

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}

	for k, v := range attrs {
		if k == "run_id" || v == "" {
			continue
		}
		fields = append(fields, observability.F(k, v))
	}

	return With(ctx, base.With(fields...))
}
