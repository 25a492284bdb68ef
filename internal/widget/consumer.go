package widget

import (
	"context"
	"fmt"
	"io"

	"github.com/poskadesign/events/event"
	"github.com/poskadesign/events/observability"
	"github.com/poskadesign/events/observability/logctx"
)

// Consumer owns a Widget and listens to it. Every notification it receives is
// written to out as one line.
type Consumer struct {
	widget *Widget
	out    io.Writer
	log    observability.Logger
	lambda event.Subscription
}

// NewConsumer builds a Consumer and registers its subscribers: two bound
// methods, a repeated OnlyUnique bind that is dropped, an unbind of the
// second method, and an anonymous func. Afterwards onReversed1 and the
// anonymous func are subscribed.
func NewConsumer(out io.Writer, logger observability.Logger, opts ...event.Option) *Consumer {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	c := &Consumer{
		widget: NewWidget(opts...),
		out:    out,
		log:    logger.With(observability.F("component", "widget_consumer")),
	}
	ev := &c.widget.StringReversed

	event.Bind1(ev, c, (*Consumer).onReversed1)
	event.Bind1(ev, c, (*Consumer).onReversed2)

	// Already bound, so this changes nothing.
	event.Bind1(ev, c, (*Consumer).onReversed2, event.OnlyUnique)

	event.Unbind1(ev, c, (*Consumer).onReversed2)

	c.lambda = ev.Subscribe(func(e WidgetEventArgs) {
		fmt.Fprintf(c.out, "%s from lambda\n", e.ReversedString)
	})

	c.log.Debug("consumer_ready", observability.F("subscribers", ev.Len()))
	return c
}

// Widget returns the widget the consumer listens to.
func (c *Consumer) Widget() *Widget { return c.widget }

// Run asks the widget to reverse input.
func (c *Consumer) Run(ctx context.Context, input string) {
	logctx.FromOr(ctx, c.log).Info("consumer_run", observability.F("input_len", len(input)))
	c.widget.ReverseString(ctx, input)
}

// Close revokes every subscription the consumer holds. It is safe to call
// more than once.
func (c *Consumer) Close() {
	ev := &c.widget.StringReversed
	event.Unbind1(ev, c, (*Consumer).onReversed1)
	ev.Unsubscribe(c.lambda)
}

func (c *Consumer) onReversed1(e WidgetEventArgs) {
	fmt.Fprintf(c.out, "%s1\n", e.ReversedString)
}

func (c *Consumer) onReversed2(e WidgetEventArgs) {
	fmt.Fprintf(c.out, "%s2\n", e.ReversedString)
}
