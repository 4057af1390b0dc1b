// Package filter implements the bounded-capacity lookup tables shared
// by the MAC filter, the IPv4 filter and the ARP cache: all three are
// the same shape (a fixed-size array of optional, expiring entries)
// just keyed and valued differently.
package filter

import "github.com/dantte-lp/gohyphaip/internal/hyphaerr"

// Clock returns the engine's monotonic timestamp, used to stamp and
// check entry expiration. Tables never call time.Now directly so they
// stay dependent only on the host's own clock.
type Clock func() int64

// entry is one slot: Valid reports whether the slot holds live data,
// Expiration is the timestamp after which the slot is treated as empty,
// and Value is the caller-supplied payload.
type entry[K comparable, V any] struct {
	Valid      bool
	Expiration int64
	Key        K
	Value      V
}

// Table is a fixed-capacity map from K to V with per-entry expiration.
// It never grows past the capacity given to New: once every slot holds a
// live entry, Add returns the full sentinel error that was passed to New
// (hyphaerr.ErrArpTableFull or one of the filter-table equivalents, at
// the caller's choice).
type Table[K comparable, V any] struct {
	entries []entry[K, V]
	full    error
	now     Clock
}

// New constructs a Table with room for capacity entries. full is the
// sentinel error Add returns once every slot is taken.
func New[K comparable, V any](capacity int, full error, now Clock) *Table[K, V] {
	return &Table[K, V]{
		entries: make([]entry[K, V], capacity),
		full:    full,
		now:     now,
	}
}

// Cap reports the table's fixed capacity.
func (t *Table[K, V]) Cap() int {
	return len(t.entries)
}

// Len reports the number of live (non-expired, valid) entries.
func (t *Table[K, V]) Len() int {
	n := 0
	now := t.now()
	for _, e := range t.entries {
		if e.Valid && (e.Expiration == 0 || e.Expiration > now) {
			n++
		}
	}
	return n
}

// Add installs (key, value) with the given lifetime. If a valid slot
// already holds key, its value and expiration are overwritten in place;
// otherwise the first empty or expired slot is used. ttl of 0 means the
// entry never expires. Returns t.full if key is not present and every
// slot is occupied by a still-live entry.
func (t *Table[K, V]) Add(key K, value V, ttl int64) error {
	now := t.now()
	for i := range t.entries {
		e := &t.entries[i]
		if e.Valid && e.Key == key {
			e.Value = value
			e.Expiration = expirationAt(now, ttl)
			return nil
		}
	}
	for i := range t.entries {
		e := &t.entries[i]
		if !e.Valid || (e.Expiration != 0 && e.Expiration <= now) {
			*e = entry[K, V]{Valid: true, Key: key, Value: value, Expiration: expirationAt(now, ttl)}
			return nil
		}
	}
	return t.full
}

// Remove clears any slot holding key.
func (t *Table[K, V]) Remove(key K) {
	for i := range t.entries {
		if t.entries[i].Valid && t.entries[i].Key == key {
			t.entries[i] = entry[K, V]{}
		}
	}
}

// Lookup returns the value stored for key and whether it is present and
// not expired.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	now := t.now()
	for _, e := range t.entries {
		if e.Valid && e.Key == key {
			if e.Expiration != 0 && e.Expiration <= now {
				var zero V
				return zero, false
			}
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

func expirationAt(now, ttl int64) int64 {
	if ttl <= 0 {
		return 0
	}
	return now + ttl
}

// ErrFull is a convenience default for callers that don't need a
// layer-specific sentinel.
var ErrFull = hyphaerr.ErrArpTableFull
