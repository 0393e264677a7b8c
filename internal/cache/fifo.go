// Package cache provides a bounded, insertion-ordered key-value store
// used to remember which upstream items have already been delivered.
// Eviction is strict FIFO: when a new key would exceed capacity, the
// single oldest key by first-insertion order is removed. Reads never
// reorder entries, and overwriting an existing key keeps its original
// insertion position.
package cache

import "maps"

// DefaultCapacity is the capacity used by the polling engine's three
// dedup caches unless configured otherwise.
const DefaultCapacity = 5000

// FIFO is a bounded insertion-ordered map. The zero value is not
// usable; construct with NewFIFO. Not safe for concurrent use: each
// instance is owned by a single engine loop.
type FIFO[K comparable, V any] struct {
	capacity int
	entries  map[K]V
	order    []K // first-insertion order, oldest at head
	head     int
}

// NewFIFO creates an empty cache holding at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewFIFO[K comparable, V any](capacity int) *FIFO[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FIFO[K, V]{
		capacity: capacity,
		entries:  make(map[K]V, capacity),
		order:    make([]K, 0, capacity),
	}
}

// Contains reports whether key is present.
func (f *FIFO[K, V]) Contains(key K) bool {
	_, ok := f.entries[key]
	return ok
}

// Get returns the value for key and whether it is present.
func (f *FIFO[K, V]) Get(key K) (V, bool) {
	v, ok := f.entries[key]
	return v, ok
}

// Put inserts or overwrites key. Overwriting keeps the key's original
// insertion position; inserting a new key at capacity first evicts the
// oldest key.
func (f *FIFO[K, V]) Put(key K, value V) {
	if _, ok := f.entries[key]; ok {
		f.entries[key] = value
		return
	}
	if len(f.entries) >= f.capacity {
		f.evictOldest()
	}
	f.entries[key] = value
	f.order = append(f.order, key)
}

// Len returns the number of entries.
func (f *FIFO[K, V]) Len() int {
	return len(f.entries)
}

// Capacity returns the maximum number of entries.
func (f *FIFO[K, V]) Capacity() int {
	return f.capacity
}

// Snapshot returns a shallow copy of the current entries. The polling
// engine takes one before classification so that delta computation
// sees the pre-cycle state while the cycle mutates the live cache.
func (f *FIFO[K, V]) Snapshot() map[K]V {
	return maps.Clone(f.entries)
}

func (f *FIFO[K, V]) evictOldest() {
	oldest := f.order[f.head]
	delete(f.entries, oldest)

	var zero K
	f.order[f.head] = zero
	f.head++

	// Compact the order slice once the dead prefix dominates, so a
	// long-lived cache does not grow without bound.
	if f.head > len(f.order)/2 {
		f.order = append(f.order[:0], f.order[f.head:]...)
		f.head = 0
	}
}
