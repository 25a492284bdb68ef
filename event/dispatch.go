package event

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/poskadesign/events/observability"
	"github.com/poskadesign/events/observability/logctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const spanFire = "event.Fire"

const (
	kindAnonymous = "anonymous"
	kindBound     = "bound"
	kindBoundWeak = "bound_weak"
)

// core is the arity-independent part of an event: its registry, its
// instrumentation and the dispatch loop. H is the subscriber func type.
type core[H any] struct {
	reg registry[H]
	ins *instruments
}

// Configure sets the event's name and instrumentation. It is meant to be
// called once, before the event is shared; the zero value of an event works
// without it.
func (c *core[H]) Configure(opts ...Option) {
	c.ins = newInstruments(opts)
}

// Name returns the name given with WithName.
func (c *core[H]) Name() string {
	return c.instruments().name
}

// HasSubscriber reports whether a subscriber is registered under key.
func (c *core[H]) HasSubscriber(key Key) bool {
	return c.reg.contains(key)
}

// Len returns the number of registered subscribers.
func (c *core[H]) Len() int {
	return c.reg.len()
}

// Unsubscribe removes the registration s was returned for. It reports false,
// and changes nothing, when that registration is already gone.
func (c *core[H]) Unsubscribe(s Subscription) bool {
	e, ok := c.reg.removeToken(s.Token)
	c.recordRemoval("unsubscribe", e, ok)
	return ok
}

func (c *core[H]) instruments() *instruments {
	if c.ins == nil {
		return defaultInstruments
	}
	return c.ins
}

func (c *core[H]) subscribe(fn H) Subscription {
	e := c.reg.addAnonymous(fn)
	c.recordAdd(kindAnonymous, Default, e, outcomeAdded)
	return e.subscription()
}

func (c *core[H]) bind(key Key, fn H, alive func() bool, flag Flag) Subscription {
	e, outcome := c.reg.add(key, fn, alive, flag)
	kind := kindBound
	if alive != nil {
		kind = kindBoundWeak
	}
	c.recordAdd(kind, flag, e, outcome)
	return e.subscription()
}

func (c *core[H]) unbind(key Key) bool {
	e, ok := c.reg.remove(key)
	c.recordRemoval("unbind", e, ok)
	return ok
}

func (c *core[H]) recordAdd(kind string, flag Flag, e *entry[H], outcome addOutcome) {
	ins := c.instruments()
	ins.subscriptions.Add(1,
		observability.L("event", ins.name),
		observability.L("kind", kind),
		observability.L("outcome", string(outcome)),
	)
	msg := "event_subscribed"
	if !outcome.stored() {
		msg = "event_subscription_dropped"
	}
	ins.log.Debug(msg,
		observability.F("kind", kind),
		observability.F("flag", flag.String()),
		observability.F("key", uint64(e.key)),
		observability.F("outcome", string(outcome)),
	)
}

func (c *core[H]) recordRemoval(op string, e *entry[H], ok bool) {
	ins := c.instruments()
	outcome := "removed"
	if !ok {
		outcome = "absent"
	}
	ins.unsubscriptions.Add(1,
		observability.L("event", ins.name),
		observability.L("outcome", outcome),
	)
	fields := []observability.Field{
		observability.F("op", op),
		observability.F("outcome", outcome),
	}
	if e != nil {
		fields = append(fields, observability.F("key", uint64(e.key)))
	}
	ins.log.Debug("event_unsubscribed", fields...)
}

// fire invokes call once for every subscriber in a snapshot of the registry.
// Subscribers run on the caller's goroutine with no lock held, so they may
// subscribe or unsubscribe. A subscriber removed before its turn is skipped;
// one added during the pass waits for the next fire.
//
// A panicking subscriber is logged and counted, then the panic continues
// with its original value and the rest of the pass is abandoned.
func (c *core[H]) fire(ctx context.Context, call func(H)) {
	if ctx == nil {
		ctx = context.Background()
	}
	ins := c.instruments()
	subs := c.reg.snapshot()

	ctx, span := ins.tracer.Start(ctx, spanFire,
		attribute.String("event.name", ins.name),
		attribute.Int("event.subscribers", len(subs)),
	)
	start := time.Now()
	defer func() {
		ins.duration.Observe(time.Since(start).Seconds())
		span.End()
	}()
	ins.fires.Add(1)

	logger := ins.log
	if l := logctx.From(ctx); l != nil {
		logger = l.With(observability.F("event", ins.name))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logger = logger.With(
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}

	invoked, stale := 0, 0
	for _, e := range subs {
		if e.removed.Load() {
			continue
		}
		if e.stale() {
			if c.reg.removeEntry(e) {
				stale++
				ins.stale.Add(1)
				logger.Warn("event_subscriber_stale",
					observability.F("key", uint64(e.key)),
				)
			}
			continue
		}
		c.invoke(logger, span, e, call)
		invoked++
	}

	span.SetAttributes(
		attribute.Int("event.invoked", invoked),
		attribute.Int("event.stale", stale),
	)
	span.SetStatus(codes.Ok, "OK")
	logger.Debug("event_fired",
		observability.F("subscribers", len(subs)),
		observability.F("invoked", invoked),
		observability.F("stale", stale),
	)
}

func (c *core[H]) invoke(logger observability.Logger, span trace.Span, e *entry[H], call func(H)) {
	ins := c.instruments()
	ins.calls.Add(1)
	defer func() {
		if r := recover(); r != nil {
			ins.panics.Add(1)
			logger.Error("event_handler_panic",
				observability.F("key", uint64(e.key)),
				observability.F("panic", fmt.Sprint(r)),
				observability.F("stack", string(debug.Stack())),
			)
			span.RecordError(fmt.Errorf("event handler panic: %v", r))
			span.SetStatus(codes.Error, "HANDLER_PANIC")
			panic(r)
		}
	}()
	call(e.handler)
}
