package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type nopLogger struct{}

func (nopLogger) With(_ ...Field) Logger { return nopLogger{} }
func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}

// NopLogger returns a logger that discards all logs. Useful as a safe fallback.
func NopLogger() Logger { return nopLogger{} }

type nopTracer struct{ t trace.Tracer }

func (n nopTracer) Start(ctx context.Context, name string, _ ...attribute.KeyValue) (context.Context, trace.Span) {
	return n.t.Start(ctx, name)
}

// NopTracer returns a tracer whose spans record nothing. Ending one of its
// spans leaves the caller's span alone.
func NopTracer() TraceCtx { return nopTracer{t: noop.NewTracerProvider().Tracer("")} }

type nopCounter struct{}

func (nopCounter) Add(float64, ...Label)      {}
func (nopCounter) Bind(...Label) BoundCounter { return nopBound{} }

type nopHistogram struct{}

func (nopHistogram) Observe(float64, ...Label)    {}
func (nopHistogram) Bind(...Label) BoundHistogram { return nopBound{} }

type nopBound struct{}

func (nopBound) Add(float64)     {}
func (nopBound) Observe(float64) {}

// NopCounter returns a counter that drops every sample.
func NopCounter() Counter { return nopCounter{} }

// NopHistogram returns a histogram that drops every observation.
func NopHistogram() Histogram { return nopHistogram{} }

type nopTelemetry struct{}

func (nopTelemetry) Tracer() TraceCtx              { return NopTracer() }
func (nopTelemetry) Counter(MetricKey) Counter     { return nil }
func (nopTelemetry) Histogram(MetricKey) Histogram { return nil }
func (nopTelemetry) Logger() Logger                { return NopLogger() }

// NopTelemetry returns a Telemetry with no registered instruments.
func NopTelemetry() Telemetry { return nopTelemetry{} }
