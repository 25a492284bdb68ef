package event

import (
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
)

// Key addresses a single subscription in an Event's registry.
type Key uint64

// Identify combines an owner identity and a member identity into a Key as
// owner*10 + member, wrapping on overflow.
//
// The combination is not injective: Identify(1, 5) and Identify(0, 15) are
// the same Key, and the registry cannot tell such subscriptions apart.
func Identify(owner, member uint64) Key {
	return Key(owner*10 + member)
}

// KeyOf returns the Key BindN derives for owner and member. member is
// expected to be a method expression such as (*Consumer).OnChanged; any
// non-func value contributes a zero member identity.
//
// Pointers to values of a zero-size type may all share one address, so two
// such owners can map to the same Key.
func KeyOf[O any, F any](owner *O, member F) Key {
	return Identify(ownerIdentity(owner), memberIdentity(member))
}

// ownerIdentity is the owner's address. The collector does not move heap
// objects and a strong binding keeps its owner reachable, so the address
// stays with that owner while the binding is registered. Zero-size values
// are the exception: they may all sit at one address.
func ownerIdentity[O any](owner *O) uint64 {
	if owner == nil {
		return 0
	}
	return uint64(reflect.ValueOf(owner).Pointer())
}

func memberIdentity(member any) uint64 {
	v := reflect.ValueOf(member)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	return uint64(v.Pointer())
}

var anonymousSeq atomic.Uint64

// nextAnonymousKey mints a process-wide unique key for a subscription that has
// no owner/member pair.
func nextAnonymousKey() Key {
	return Key(anonymousSeq.Add(1))
}

// Subscription is the handle returned by every subscribe and bind call.
// The zero value means nothing was registered.
type Subscription struct {
	Token uuid.UUID
	Key   Key
}

// Valid reports whether s refers to a registration that was accepted at some
// point. It does not report whether the registration is still present; use
// HasSubscriber for that.
func (s Subscription) Valid() bool {
	return s.Token != uuid.Nil
}
