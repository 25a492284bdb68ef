// Package widget is a small publisher/consumer pair showing how events are
// declared, bound, fired and revoked.
package widget

import (
	"context"

	"github.com/poskadesign/events/event"
)

// EventStringReversed names the Widget.StringReversed event in logs, spans
// and metrics.
const EventStringReversed = "widget.string_reversed"

// WidgetEventArgs is the payload of Widget.StringReversed.
type WidgetEventArgs struct {
	ReversedString string
}

// Widget reverses strings and announces every result.
type Widget struct {
	StringReversed event.Event1[WidgetEventArgs]
}

// NewWidget returns a Widget whose event is configured with opts.
func NewWidget(opts ...event.Option) *Widget {
	w := &Widget{}
	w.StringReversed.Configure(append([]event.Option{event.WithName(EventStringReversed)}, opts...)...)
	return w
}

// ReverseString fires StringReversed twice with the reversed s: once through
// FireContext and once through the plain func returned by Func.
func (w *Widget) ReverseString(ctx context.Context, s string) {
	args := WidgetEventArgs{ReversedString: Reverse(s)}

	w.StringReversed.FireContext(ctx, args)

	fire := w.StringReversed.Func()
	fire(args)
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
