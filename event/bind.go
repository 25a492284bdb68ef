package event

import (
	"unsafe"
	"weak"
)

// Bind0 registers member, called on owner, as a subscriber of e. The Key is
// KeyOf(owner, member), so binding the same pair twice leaves one
// registration and returns its Subscription. A nil owner or member registers
// nothing.
//
// member should be a method expression:
//
//	event.Bind0(&w.Closed, c, (*Consumer).onClosed)
//
// A strong binding keeps owner reachable until it is unbound. Pass WeakOwner
// to let the owner be collected; the subscriber is then dropped at the next
// fire. A weak owner must be heap-allocated: the runtime aborts the process
// for a pointer to a package-level variable. Owners of a zero-size type are
// always bound strongly.
//
// Every value of a zero-size type may share one address, so distinct such
// owners can yield the same Key and the later bind is dropped.
func Bind0[O any](e *Event0, owner *O, member func(*O), flags ...Flag) Subscription {
	if owner == nil || member == nil {
		return Subscription{}
	}
	flag := bindFlag(owner, flags)
	key := KeyOf(owner, member)
	if flag&WeakOwner != 0 {
		wp := weak.Make(owner)
		return e.bind(key, func() {
			if o := wp.Value(); o != nil {
				member(o)
			}
		}, alive(wp), flag)
	}
	return e.bind(key, func() { member(owner) }, nil, flag)
}

// Unbind0 removes the subscriber Bind0 registered for owner and member. It
// reports false when there is none.
func Unbind0[O any](e *Event0, owner *O, member func(*O)) bool {
	if owner == nil || member == nil {
		return false
	}
	return e.unbind(KeyOf(owner, member))
}

// Bind1 is Bind0 for one-argument events.
func Bind1[O, A any](e *Event1[A], owner *O, member func(*O, A), flags ...Flag) Subscription {
	if owner == nil || member == nil {
		return Subscription{}
	}
	flag := bindFlag(owner, flags)
	key := KeyOf(owner, member)
	if flag&WeakOwner != 0 {
		wp := weak.Make(owner)
		return e.bind(key, func(a A) {
			if o := wp.Value(); o != nil {
				member(o, a)
			}
		}, alive(wp), flag)
	}
	return e.bind(key, func(a A) { member(owner, a) }, nil, flag)
}

// Unbind1 is Unbind0 for one-argument events.
func Unbind1[O, A any](e *Event1[A], owner *O, member func(*O, A)) bool {
	if owner == nil || member == nil {
		return false
	}
	return e.unbind(KeyOf(owner, member))
}

// Bind2 is Bind0 for two-argument events.
func Bind2[O, A, B any](e *Event2[A, B], owner *O, member func(*O, A, B), flags ...Flag) Subscription {
	if owner == nil || member == nil {
		return Subscription{}
	}
	flag := bindFlag(owner, flags)
	key := KeyOf(owner, member)
	if flag&WeakOwner != 0 {
		wp := weak.Make(owner)
		return e.bind(key, func(a A, b B) {
			if o := wp.Value(); o != nil {
				member(o, a, b)
			}
		}, alive(wp), flag)
	}
	return e.bind(key, func(a A, b B) { member(owner, a, b) }, nil, flag)
}

// Unbind2 is Unbind0 for two-argument events.
func Unbind2[O, A, B any](e *Event2[A, B], owner *O, member func(*O, A, B)) bool {
	if owner == nil || member == nil {
		return false
	}
	return e.unbind(KeyOf(owner, member))
}

// Bind3 is Bind0 for three-argument events.
func Bind3[O, A, B, C any](e *Event3[A, B, C], owner *O, member func(*O, A, B, C), flags ...Flag) Subscription {
	if owner == nil || member == nil {
		return Subscription{}
	}
	flag := bindFlag(owner, flags)
	key := KeyOf(owner, member)
	if flag&WeakOwner != 0 {
		wp := weak.Make(owner)
		return e.bind(key, func(a A, b B, c C) {
			if o := wp.Value(); o != nil {
				member(o, a, b, c)
			}
		}, alive(wp), flag)
	}
	return e.bind(key, func(a A, b B, c C) { member(owner, a, b, c) }, nil, flag)
}

// Unbind3 is Unbind0 for three-argument events.
func Unbind3[O, A, B, C any](e *Event3[A, B, C], owner *O, member func(*O, A, B, C)) bool {
	if owner == nil || member == nil {
		return false
	}
	return e.unbind(KeyOf(owner, member))
}

// Bind4 is Bind0 for four-argument events.
func Bind4[O, A, B, C, D any](e *Event4[A, B, C, D], owner *O, member func(*O, A, B, C, D), flags ...Flag) Subscription {
	if owner == nil || member == nil {
		return Subscription{}
	}
	flag := bindFlag(owner, flags)
	key := KeyOf(owner, member)
	if flag&WeakOwner != 0 {
		wp := weak.Make(owner)
		return e.bind(key, func(a A, b B, c C, d D) {
			if o := wp.Value(); o != nil {
				member(o, a, b, c, d)
			}
		}, alive(wp), flag)
	}
	return e.bind(key, func(a A, b B, c C, d D) { member(owner, a, b, c, d) }, nil, flag)
}

// Unbind4 is Unbind0 for four-argument events.
func Unbind4[O, A, B, C, D any](e *Event4[A, B, C, D], owner *O, member func(*O, A, B, C, D)) bool {
	if owner == nil || member == nil {
		return false
	}
	return e.unbind(KeyOf(owner, member))
}

func alive[O any](wp weak.Pointer[O]) func() bool {
	return func() bool { return wp.Value() != nil }
}

// bindFlag merges flags and clears WeakOwner for owners weak.Make cannot
// track.
func bindFlag[O any](owner *O, flags []Flag) Flag {
	flag := mergeFlags(flags)
	if flag&WeakOwner != 0 && unsafe.Sizeof(*owner) == 0 {
		flag &^= WeakOwner
	}
	return flag
}
