package observability

const (
	MEventSubscriptions   MetricKey = "event_subscriptions_total"
	MEventUnsubscriptions MetricKey = "event_unsubscriptions_total"
	MEventFires           MetricKey = "event_fires_total"
	MEventHandlerCalls    MetricKey = "event_handler_calls_total"
	MEventHandlerPanics   MetricKey = "event_handler_panics_total"
	MEventStaleHandlers   MetricKey = "event_stale_subscribers_total"
	MEventFireDuration    MetricKey = "event_fire_duration_seconds"
	MHTTPRequests         MetricKey = "http_requests_total"
	MHTTPRequestDuration  MetricKey = "http_request_duration_seconds"
)

// MetricSpec describes how a metric is registered with a backend.
type MetricSpec struct {
	Key    MetricKey
	Help   string
	Labels []string
}

// EventCounters lists the counters an event reports to.
var EventCounters = []MetricSpec{
	{MEventSubscriptions, "Subscription attempts by kind and outcome.", []string{"event", "kind", "outcome"}},
	{MEventUnsubscriptions, "Unsubscribe and unbind calls by outcome.", []string{"event", "outcome"}},
	{MEventFires, "Number of times an event was fired.", []string{"event"}},
	{MEventHandlerCalls, "Subscriber invocations performed by fire.", []string{"event"}},
	{MEventHandlerPanics, "Subscriber invocations that panicked.", []string{"event"}},
	{MEventStaleHandlers, "Weakly bound subscribers dropped because their owner was collected.", []string{"event"}},
}

// EventHistograms lists the histograms an event reports to.
var EventHistograms = []MetricSpec{
	{MEventFireDuration, "Duration of a full fire pass in seconds.", []string{"event"}},
}

// HTTPCounters and HTTPHistograms describe the demo server instruments.
var (
	HTTPCounters = []MetricSpec{
		{MHTTPRequests, "Total HTTP requests.", []string{"method", "route", "status"}},
	}
	HTTPHistograms = []MetricSpec{
		{MHTTPRequestDuration, "HTTP request duration in seconds.", []string{"method", "route", "status"}},
	}
)
