package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// addOutcome describes what the registry did with an add request.
type addOutcome string

const (
	outcomeAdded    addOutcome = "added"
	outcomeReplaced addOutcome = "replaced_stale"
	outcomeRejected addOutcome = "rejected_duplicate"
	outcomeIgnored  addOutcome = "ignored_duplicate"
)

func (o addOutcome) stored() bool {
	return o == outcomeAdded || o == outcomeReplaced
}

type entry[H any] struct {
	key     Key
	token   uuid.UUID
	handler H
	// alive is nil for strong registrations.
	alive   func() bool
	removed atomic.Bool
}

func (e *entry[H]) stale() bool {
	return e.alive != nil && !e.alive()
}

func (e *entry[H]) subscription() Subscription {
	return Subscription{Token: e.token, Key: e.key}
}

// registry maps keys to subscribers. Keys are unique; iteration order is
// whatever the map yields.
type registry[H any] struct {
	mu      sync.RWMutex
	entries map[Key]*entry[H]
	tokens  map[uuid.UUID]Key
}

func (r *registry[H]) initLocked() {
	if r.entries == nil {
		r.entries = make(map[Key]*entry[H])
	}
	if r.tokens == nil {
		r.tokens = make(map[uuid.UUID]Key)
	}
}

func (r *registry[H]) contains(key Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

func (r *registry[H]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// add stores handler under key unless a live entry already owns the key. The
// returned entry is the one that holds the key afterwards.
func (r *registry[H]) add(key Key, handler H, alive func() bool, flag Flag) (*entry[H], addOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initLocked()

	outcome := outcomeAdded
	if existing, ok := r.entries[key]; ok {
		switch {
		case existing.stale():
			r.deleteLocked(existing)
			outcome = outcomeReplaced
		case flag&OnlyUnique != 0:
			return existing, outcomeRejected
		default:
			return existing, outcomeIgnored
		}
	}

	e := &entry[H]{
		key:     key,
		token:   uuid.New(),
		handler: handler,
		alive:   alive,
	}
	r.entries[key] = e
	r.tokens[e.token] = key
	return e, outcome
}

// addAnonymous stores handler under a freshly minted key. A minted key that
// is already taken is skipped, so an anonymous subscription never displaces
// another one.
func (r *registry[H]) addAnonymous(handler H) *entry[H] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initLocked()

	key := nextAnonymousKey()
	for {
		if _, taken := r.entries[key]; !taken {
			break
		}
		key = nextAnonymousKey()
	}

	e := &entry[H]{
		key:     key,
		token:   uuid.New(),
		handler: handler,
	}
	r.entries[key] = e
	r.tokens[e.token] = key
	return e
}

func (r *registry[H]) remove(key Key) (*entry[H], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	r.deleteLocked(e)
	return e, true
}

func (r *registry[H]) removeToken(token uuid.UUID) (*entry[H], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.tokens[token]
	if !ok {
		return nil, false
	}
	e := r.entries[key]
	r.deleteLocked(e)
	return e, true
}

// removeEntry deletes e only if it still holds its key.
func (r *registry[H]) removeEntry(e *entry[H]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.entries[e.key]; !ok || cur != e {
		return false
	}
	r.deleteLocked(e)
	return true
}

func (r *registry[H]) deleteLocked(e *entry[H]) {
	e.removed.Store(true)
	delete(r.entries, e.key)
	delete(r.tokens, e.token)
}

func (r *registry[H]) snapshot() []*entry[H] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entry[H], 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}
