package event

import "context"

// Event0 is an event whose subscribers take no arguments.
// The zero value is ready to use.
type Event0 struct {
	core[func()]
}

// New0 returns a configured Event0.
func New0(opts ...Option) *Event0 {
	e := &Event0{}
	e.Configure(opts...)
	return e
}

// Subscribe registers fn under a fresh Key. A nil fn registers nothing and
// yields the zero Subscription.
func (e *Event0) Subscribe(fn func()) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.subscribe(fn)
}

// Fire invokes every subscriber once, in unspecified order.
func (e *Event0) Fire() {
	e.FireContext(context.Background())
}

// FireContext is Fire with a context for the fire span and logger.
func (e *Event0) FireContext(ctx context.Context) {
	e.fire(ctx, func(h func()) { h() })
}

// Func returns Fire as a plain func value, so the event can be handed out
// wherever a callback is expected.
func (e *Event0) Func() func() {
	return e.Fire
}

// Event1 is an event whose subscribers take one argument.
// The zero value is ready to use.
type Event1[A any] struct {
	core[func(A)]
}

// New1 returns a configured Event1.
func New1[A any](opts ...Option) *Event1[A] {
	e := &Event1[A]{}
	e.Configure(opts...)
	return e
}

// Subscribe registers fn under a fresh Key. A nil fn registers nothing and
// yields the zero Subscription.
func (e *Event1[A]) Subscribe(fn func(A)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.subscribe(fn)
}

// Fire invokes every subscriber once with a, in unspecified order.
func (e *Event1[A]) Fire(a A) {
	e.FireContext(context.Background(), a)
}

// FireContext is Fire with a context for the fire span and logger.
func (e *Event1[A]) FireContext(ctx context.Context, a A) {
	e.fire(ctx, func(h func(A)) { h(a) })
}

// Func returns Fire as a plain func value.
func (e *Event1[A]) Func() func(A) {
	return e.Fire
}

// Event2 is an event whose subscribers take two arguments.
// The zero value is ready to use.
type Event2[A, B any] struct {
	core[func(A, B)]
}

// New2 returns a configured Event2.
func New2[A, B any](opts ...Option) *Event2[A, B] {
	e := &Event2[A, B]{}
	e.Configure(opts...)
	return e
}

// Subscribe registers fn under a fresh Key. A nil fn registers nothing and
// yields the zero Subscription.
func (e *Event2[A, B]) Subscribe(fn func(A, B)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.subscribe(fn)
}

// Fire invokes every subscriber once with a and b, in unspecified order.
func (e *Event2[A, B]) Fire(a A, b B) {
	e.FireContext(context.Background(), a, b)
}

// FireContext is Fire with a context for the fire span and logger.
func (e *Event2[A, B]) FireContext(ctx context.Context, a A, b B) {
	e.fire(ctx, func(h func(A, B)) { h(a, b) })
}

// Func returns Fire as a plain func value.
func (e *Event2[A, B]) Func() func(A, B) {
	return e.Fire
}

// Event3 is an event whose subscribers take three arguments.
// The zero value is ready to use.
type Event3[A, B, C any] struct {
	core[func(A, B, C)]
}

// New3 returns a configured Event3.
func New3[A, B, C any](opts ...Option) *Event3[A, B, C] {
	e := &Event3[A, B, C]{}
	e.Configure(opts...)
	return e
}

// Subscribe registers fn under a fresh Key. A nil fn registers nothing and
// yields the zero Subscription.
func (e *Event3[A, B, C]) Subscribe(fn func(A, B, C)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.subscribe(fn)
}

// Fire invokes every subscriber once with a, b and c, in unspecified order.
func (e *Event3[A, B, C]) Fire(a A, b B, c C) {
	e.FireContext(context.Background(), a, b, c)
}

// FireContext is Fire with a context for the fire span and logger.
func (e *Event3[A, B, C]) FireContext(ctx context.Context, a A, b B, c C) {
	e.fire(ctx, func(h func(A, B, C)) { h(a, b, c) })
}

// Func returns Fire as a plain func value.
func (e *Event3[A, B, C]) Func() func(A, B, C) {
	return e.Fire
}

// Event4 is an event whose subscribers take four arguments, the most an
// event supports.
// The zero value is ready to use.
type Event4[A, B, C, D any] struct {
	core[func(A, B, C, D)]
}

// New4 returns a configured Event4.
func New4[A, B, C, D any](opts ...Option) *Event4[A, B, C, D] {
	e := &Event4[A, B, C, D]{}
	e.Configure(opts...)
	return e
}

// Subscribe registers fn under a fresh Key. A nil fn registers nothing and
// yields the zero Subscription.
func (e *Event4[A, B, C, D]) Subscribe(fn func(A, B, C, D)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.subscribe(fn)
}

// Fire invokes every subscriber once with a, b, c and d, in unspecified order.
func (e *Event4[A, B, C, D]) Fire(a A, b B, c C, d D) {
	e.FireContext(context.Background(), a, b, c, d)
}

// FireContext is Fire with a context for the fire span and logger.
func (e *Event4[A, B, C, D]) FireContext(ctx context.Context, a A, b B, c C, d D) {
	e.fire(ctx, func(h func(A, B, C, D)) { h(a, b, c, d) })
}

// Func returns Fire as a plain func value.
func (e *Event4[A, B, C, D]) Func() func(A, B, C, D) {
	return e.Fire
}
