// Package changelog provides ravel.Recorder implementations for inspecting
// committed changes: an in-memory ring, a tree-formatted printer, and a
// fan-out combinator.
package changelog

import (
	"sync"

	"github.com/RavelOrg/ravel"
)

// DefaultRingCapacity bounds a Ring constructed with capacity <= 0
const DefaultRingCapacity = 256

// Ring keeps the most recent entries in memory, discarding the oldest once
// capacity is reached. Safe for concurrent use.
type Ring struct {
	mu      sync.RWMutex
	entries []ravel.Entry
	max     int
	total   uint64
}

// NewRing creates a Ring holding up to capacity entries.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{
		entries: make([]ravel.Entry, 0, capacity),
		max:     capacity,
	}
}

// Record implements ravel.Recorder.
func (r *Ring) Record(e ravel.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total++
	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[1:]
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (r *Ring) Entries() []ravel.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ravel.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Recent returns the count most recent entries, oldest first.
func (r *Ring) Recent(count int) []ravel.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if count > len(r.entries) {
		count = len(r.entries)
	}
	if count < 0 {
		count = 0
	}

	out := make([]ravel.Entry, count)
	copy(out, r.entries[len(r.entries)-count:])
	return out
}

// Len returns the number of retained entries.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Total returns the number of entries observed, including discarded ones.
func (r *Ring) Total() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}
