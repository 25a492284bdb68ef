package telemetry

import (
	"github.com/poskadesign/events/observability"
)

// Backend creates metric instruments. prometrics.Registry satisfies it.
type Backend interface {
	Counter(name string, help string, labelKeys ...string) observability.Counter
	Histogram(name string, help string, buckets []float64, labelKeys ...string) observability.Histogram
}

// Config lists what a Telemetry is built from. Nil fields fall back to nop
// implementations; with no Metrics backend every instrument lookup misses.
type Config struct {
	Tracer     observability.TraceCtx
	Logger     observability.Logger
	Metrics    Backend
	Counters   []observability.MetricSpec
	Histograms []observability.MetricSpec
}

type provider struct {
	tracer     observability.TraceCtx
	logger     observability.Logger
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

// New registers every MetricSpec in cfg with cfg.Metrics and returns the bundle.
// Histograms use the backend's default buckets.
func New(cfg Config) observability.Telemetry {
	p := &provider{
		tracer:     cfg.Tracer,
		logger:     cfg.Logger,
		counters:   make(map[observability.MetricKey]observability.Counter, len(cfg.Counters)),
		histograms: make(map[observability.MetricKey]observability.Histogram, len(cfg.Histograms)),
	}
	if p.tracer == nil {
		p.tracer = observability.NopTracer()
	}
	if p.logger == nil {
		p.logger = observability.NopLogger()
	}
	if cfg.Metrics == nil {
		return p
	}

	for _, s := range cfg.Counters {
		if c := cfg.Metrics.Counter(string(s.Key), s.Help, s.Labels...); c != nil {
			p.counters[s.Key] = c
		}
	}
	for _, s := range cfg.Histograms {
		if h := cfg.Metrics.Histogram(string(s.Key), s.Help, nil, s.Labels...); h != nil {
			p.histograms[s.Key] = h
		}
	}
	return p
}

func (p *provider) Tracer() observability.TraceCtx { return p.tracer }

func (p *provider) Logger() observability.Logger { return p.logger }

// Counter returns nil for a key that was not in Config.Counters.
func (p *provider) Counter(key observability.MetricKey) observability.Counter {
	return p.counters[key]
}

// Histogram returns nil for a key that was not in Config.Histograms.
func (p *provider) Histogram(key observability.MetricKey) observability.Histogram {
	return p.histograms[key]
}
