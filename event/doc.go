// Package event implements typed, synchronous, in-process events: a publisher
// declares an event with a fixed argument list, consumers register callbacks,
// and firing the event calls every registered callback on the firing
// goroutine.
//
// # Declaring events
//
// Go has no variadic type parameters, so there is one type per arity:
// Event0, Event1[A], Event2[A, B], Event3[A, B, C] and Event4[A, B, C, D].
// Four arguments is the ceiling; there is no Event5. The zero value of each
// type is ready to use, which makes an event a plain field of its publisher:
//
//	type Widget struct {
//	    Resized event.Event2[int, int]
//	}
//
//	func (w *Widget) Resize(width, height int) {
//	    w.Resized.Fire(width, height)
//	}
//
// # Subscribing
//
// Anonymous callbacks are registered with Subscribe. Methods of an owner are
// registered with the BindN functions, which take the owner and a method
// expression:
//
//	sub := w.Resized.Subscribe(func(width, height int) { ... })
//	event.Bind2(&w.Resized, layout, (*Layout).onResized)
//
// Every registration is addressed by a Key. For BindN the Key is derived from
// the owner's address and the method's code pointer (see Identify), so
// binding the same pair twice yields a single registration, and UnbindN
// removes it without a handle. Subscribe mints a fresh Key per call.
//
// Both return a Subscription whose token revokes the registration through
// Unsubscribe, whichever way it was made.
//
// # Firing
//
// Fire calls each subscriber once with the given arguments. Order is
// unspecified and differs between fires. Subscribers run without any lock
// held; a subscriber may subscribe or unsubscribe during a fire. Subscribers
// added during a fire are first called by the next one, and a subscriber
// removed before its turn is not called.
//
// A panic in a subscriber reaches the caller of Fire unchanged, and the
// remaining subscribers of that fire are not called.
//
// # Lifetimes
//
// A strong binding keeps its owner alive, so owners must be unbound when
// they are discarded. With the WeakOwner flag the owner is held weakly; once
// it has been collected its subscriber is removed at the next fire and
// reported as stale instead of being called.
//
// # Concurrency
//
// Registry operations are guarded by a mutex, but an event is meant to be
// owned by one publisher. The relative order of Fire, Subscribe and
// Unsubscribe calls made from different goroutines is not defined; callers
// that need one must synchronise themselves.
package event
