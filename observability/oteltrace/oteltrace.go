package oteltrace

import (
	"context"

	"github.com/poskadesign/events/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New returns a tracer backed by the global provider. Install a provider with
// otel.SetTracerProvider before spans are expected to be exported.
func New(name string) observability.TraceCtx {
	return NewWithProvider(otel.GetTracerProvider(), name)
}

// NewWithProvider returns a tracer backed by tp.
func NewWithProvider(tp trace.TracerProvider, name string) observability.TraceCtx {
	if name == "" {
		name = "github.com/poskadesign/events"
	}
	return &tracer{t: tp.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
