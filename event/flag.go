package event

import "strings"

// Flag modifies how a bind call registers its subscriber. Flags combine with |.
type Flag uint8

const (
	// Default registers without checking for an existing Key. The registry
	// still keeps only the first registration for a Key.
	Default Flag = 0
	// OnlyUnique drops the registration when a subscriber with the same Key
	// is already present.
	OnlyUnique Flag = 1 << 0
	// WeakOwner holds the owner through a weak pointer. Once the owner is
	// collected the subscriber is removed at the next fire instead of being
	// invoked. The owner must be heap-allocated; zero-size owners ignore
	// the flag.
	WeakOwner Flag = 1 << 1
)

func (f Flag) String() string {
	if f == Default {
		return "default"
	}
	var parts []string
	if f&OnlyUnique != 0 {
		parts = append(parts, "only_unique")
	}
	if f&WeakOwner != 0 {
		parts = append(parts, "weak_owner")
	}
	if rest := f &^ (OnlyUnique | WeakOwner); rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}

func mergeFlags(flags []Flag) Flag {
	var f Flag
	for _, fl := range flags {
		f |= fl
	}
	return f
}
