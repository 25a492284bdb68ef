package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/poskadesign/events/event"
	"github.com/poskadesign/events/observability"
	"github.com/poskadesign/events/observability/logctx"
	"github.com/poskadesign/events/observability/oteltrace"
	"github.com/poskadesign/events/observability/prometrics"
	"github.com/poskadesign/events/observability/telemetry"
	"github.com/poskadesign/events/observability/zaplogger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type harness struct {
	reg      *prometheus.Registry
	logs     *observer.ObservedLogs
	recorder *tracetest.SpanRecorder
	tel      observability.Telemetry
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zaplogger.New(zap.New(core))

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reg := prometheus.NewRegistry()

	return &harness{
		reg:      reg,
		logs:     logs,
		recorder: recorder,
		tel: telemetry.New(telemetry.Config{
			Tracer:     oteltrace.NewWithProvider(tp, "event-test"),
			Logger:     logger,
			Metrics:    prometrics.New("test", "", reg),
			Counters:   observability.EventCounters,
			Histograms: observability.EventHistograms,
		}),
	}
}

// counter sums the samples of a counter family whose labels include want.
func (h *harness) counter(t *testing.T, name string, want map[string]string) float64 {
	t.Helper()
	families, err := h.reg.Gather()
	require.NoError(t, err)

	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if hasLabels(m.GetLabel(), want) {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func (h *harness) histogramCount(t *testing.T, name string) uint64 {
	t.Helper()
	families, err := h.reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var n uint64
		for _, m := range mf.GetMetric() {
			n += m.GetHistogram().GetSampleCount()
		}
		return n
	}
	return 0
}

func hasLabels[P interface {
	GetName() string
	GetValue() string
}](pairs []P, want map[string]string) bool {
	found := 0
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; ok && v == p.GetValue() {
			found++
		}
	}
	return found == len(want)
}

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type meter struct{ seen []string }

func (m *meter) onReading(v string) { m.seen = append(m.seen, v) }

func TestFireReportsMetrics(t *testing.T) {
	h := newHarness(t)
	e := event.New1[string](event.WithName("reading"), event.WithTelemetry(h.tel))

	m := &meter{}
	event.Bind1(e, m, (*meter).onReading)
	event.Bind1(e, m, (*meter).onReading, event.OnlyUnique)
	sub := e.Subscribe(func(string) {})

	e.Fire("a")
	e.Fire("b")
	e.Unsubscribe(sub)
	e.Unsubscribe(sub)

	assert.Equal(t, []string{"a", "b"}, m.seen)

	prefix := "test_"
	assert.Equal(t, 1.0, h.counter(t, prefix+string(observability.MEventSubscriptions),
		map[string]string{"event": "reading", "kind": "bound", "outcome": "added"}))
	assert.Equal(t, 1.0, h.counter(t, prefix+string(observability.MEventSubscriptions),
		map[string]string{"event": "reading", "kind": "bound", "outcome": "rejected_duplicate"}))
	assert.Equal(t, 1.0, h.counter(t, prefix+string(observability.MEventSubscriptions),
		map[string]string{"event": "reading", "kind": "anonymous", "outcome": "added"}))
	assert.Equal(t, 2.0, h.counter(t, prefix+string(observability.MEventFires),
		map[string]string{"event": "reading"}))
	assert.Equal(t, 4.0, h.counter(t, prefix+string(observability.MEventHandlerCalls),
		map[string]string{"event": "reading"}))
	assert.Equal(t, 1.0, h.counter(t, prefix+string(observability.MEventUnsubscriptions),
		map[string]string{"event": "reading", "outcome": "removed"}))
	assert.Equal(t, 1.0, h.counter(t, prefix+string(observability.MEventUnsubscriptions),
		map[string]string{"event": "reading", "outcome": "absent"}))
	assert.Equal(t, uint64(2), h.histogramCount(t, prefix+string(observability.MEventFireDuration)))
}

func TestFireOpensSpan(t *testing.T) {
	h := newHarness(t)
	e := event.New0(event.WithName("tick"), event.WithTelemetry(h.tel))
	e.Subscribe(func() {})
	e.Subscribe(func() {})

	e.Fire()

	spans := h.recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "event.Fire", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	name, ok := spanAttr(span.Attributes(), "event.name")
	require.True(t, ok)
	assert.Equal(t, "tick", name.AsString())

	invoked, ok := spanAttr(span.Attributes(), "event.invoked")
	require.True(t, ok)
	assert.Equal(t, int64(2), invoked.AsInt64())
}

func TestFireContextNestsSpanAndUsesContextLogger(t *testing.T) {
	h := newHarness(t)
	e := event.New1[int](event.WithName("count"), event.WithTelemetry(h.tel))
	e.Subscribe(func(int) {})

	ctx, parent := h.tel.Tracer().Start(context.Background(), "parent")
	ctx = logctx.With(ctx, h.tel.Logger().With(observability.F("request_id", "r-1")))
	e.FireContext(ctx, 1)
	parent.End()

	spans := h.recorder.Ended()
	require.Len(t, spans, 2)
	fire := spans[0]
	assert.Equal(t, "event.Fire", fire.Name())
	assert.Equal(t, parent.SpanContext().SpanID(), fire.Parent().SpanID())

	fired := h.logs.FilterMessage("event_fired").All()
	require.Len(t, fired, 1)
	fields := fired[0].ContextMap()
	assert.Equal(t, "r-1", fields["request_id"])
	assert.Equal(t, "count", fields["event"])
	assert.Equal(t, fire.SpanContext().TraceID().String(), fields["trace_id"])
}

func TestPanicIsInstrumentedAndRethrown(t *testing.T) {
	h := newHarness(t)
	e := event.New1[int](event.WithName("fragile"), event.WithTelemetry(h.tel))
	boom := errors.New("boom")
	e.Subscribe(func(int) { panic(boom) })

	require.PanicsWithValue(t, boom, func() { e.Fire(1) })

	assert.Equal(t, 1.0, h.counter(t, "test_"+string(observability.MEventHandlerPanics),
		map[string]string{"event": "fragile"}))

	spans := h.recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "HANDLER_PANIC", spans[0].Status().Description)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)

	logged := h.logs.FilterMessage("event_handler_panic").All()
	require.Len(t, logged, 1)
	assert.Equal(t, zapcore.ErrorLevel, logged[0].Level)
	assert.Equal(t, "boom", logged[0].ContextMap()["panic"])
}

func TestSubscriptionLogs(t *testing.T) {
	h := newHarness(t)
	e := event.New1[string](event.WithName("logged"), event.WithTelemetry(h.tel))
	m := &meter{}

	event.Bind1(e, m, (*meter).onReading)
	event.Bind1(e, m, (*meter).onReading)
	event.Unbind1(e, m, (*meter).onReading)

	added := h.logs.FilterMessage("event_subscribed").All()
	require.Len(t, added, 1)
	assert.Equal(t, "bound", added[0].ContextMap()["kind"])

	dropped := h.logs.FilterMessage("event_subscription_dropped").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, "ignored_duplicate", dropped[0].ContextMap()["outcome"])

	removed := h.logs.FilterMessage("event_unsubscribed").All()
	require.Len(t, removed, 1)
	assert.Equal(t, "unbind", removed[0].ContextMap()["op"])
}

func TestTwoEventsShareInstruments(t *testing.T) {
	h := newHarness(t)
	a := event.New0(event.WithName("a"), event.WithTelemetry(h.tel))
	b := event.New0(event.WithName("b"), event.WithTelemetry(h.tel))

	a.Fire()
	b.Fire()
	b.Fire()

	assert.Equal(t, 1.0, h.counter(t, "test_event_fires_total", map[string]string{"event": "a"}))
	assert.Equal(t, 2.0, h.counter(t, "test_event_fires_total", map[string]string{"event": "b"}))
	assert.Equal(t, "a", a.Name())
}

func TestDefaultsAreSilent(t *testing.T) {
	var e event.Event0
	calls := 0
	e.Subscribe(func() { calls++ })

	assert.Equal(t, "unnamed", e.Name())
	assert.NotPanics(t, func() { e.FireContext(context.Background()) })
	assert.Equal(t, 1, calls)

	e.Configure(event.WithTelemetry(nil), nil)
	e.Fire()
	assert.Equal(t, 2, calls)
}
