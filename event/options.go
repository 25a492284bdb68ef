package event

import (
	"github.com/poskadesign/events/observability"
)

const defaultName = "unnamed"

// Option configures the name and instrumentation of an event.
type Option func(*options)

type options struct {
	name       string
	logger     observability.Logger
	tracer     observability.TraceCtx
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

// WithName sets the name used in log fields, span attributes and metric labels.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used when the fire context carries none.
func WithLogger(l observability.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracer sets the tracer that opens a span per fire.
func WithTracer(t observability.TraceCtx) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithTelemetry takes the logger, tracer and every registered event metric
// from tel. Metrics tel does not know about stay silent.
func WithTelemetry(tel observability.Telemetry) Option {
	return func(o *options) {
		if tel == nil {
			return
		}
		o.logger = tel.Logger()
		o.tracer = tel.Tracer()
		for _, s := range observability.EventCounters {
			if c := tel.Counter(s.Key); c != nil {
				o.counters[s.Key] = c
			}
		}
		for _, s := range observability.EventHistograms {
			if h := tel.Histogram(s.Key); h != nil {
				o.histograms[s.Key] = h
			}
		}
	}
}

// instruments is the resolved form of options. Every field is non-nil.
type instruments struct {
	name            string
	log             observability.Logger
	tracer          observability.TraceCtx
	subscriptions   observability.Counter
	unsubscriptions observability.Counter
	fires           observability.BoundCounter
	calls           observability.BoundCounter
	panics          observability.BoundCounter
	stale           observability.BoundCounter
	duration        observability.BoundHistogram
}

var defaultInstruments = newInstruments(nil)

func newInstruments(opts []Option) *instruments {
	o := &options{
		counters:   make(map[observability.MetricKey]observability.Counter),
		histograms: make(map[observability.MetricKey]observability.Histogram),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.name == "" {
		o.name = defaultName
	}
	if o.logger == nil {
		o.logger = observability.NopLogger()
	}
	if o.tracer == nil {
		o.tracer = observability.NopTracer()
	}

	counter := func(k observability.MetricKey) observability.Counter {
		if c, ok := o.counters[k]; ok {
			return c
		}
		return observability.NopCounter()
	}
	histogram := func(k observability.MetricKey) observability.Histogram {
		if h, ok := o.histograms[k]; ok {
			return h
		}
		return observability.NopHistogram()
	}
	self := observability.L("event", o.name)

	return &instruments{
		name:            o.name,
		log:             o.logger.With(observability.F("event", o.name)),
		tracer:          o.tracer,
		subscriptions:   counter(observability.MEventSubscriptions),
		unsubscriptions: counter(observability.MEventUnsubscriptions),
		fires:           counter(observability.MEventFires).Bind(self),
		calls:           counter(observability.MEventHandlerCalls).Bind(self),
		panics:          counter(observability.MEventHandlerPanics).Bind(self),
		stale:           counter(observability.MEventStaleHandlers).Bind(self),
		duration:        histogram(observability.MEventFireDuration).Bind(self),
	}
}
