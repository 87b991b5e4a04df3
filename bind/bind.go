// Package bind exposes two-way accessors over a store. A Field projects one
// value out of the committed state for reads and wraps widget writes into
// changes, so UI toolkits never touch state directly.
package bind

import (
	"errors"

	"github.com/RavelOrg/ravel"
)

// ErrReadOnly is returned by Set on a field built without a change constructor
var ErrReadOnly = errors.New("bind: field is read-only")

// Field binds one projected value of a store's state: reads go through get,
// writes are wrapped into a change and submitted. It carries no state of its
// own.
type Field[S, T any] struct {
	store *ravel.Store[S]
	get   func(S) T
	wrap  func(T) ravel.Change
}

// New builds a field over store. get projects the bound value out of the
// state; wrap builds the change a write submits. A nil wrap makes the field
// read-only. Panics on a nil store or get, which is a wiring bug.
func New[S, T any](store *ravel.Store[S], get func(S) T, wrap func(T) ravel.Change) *Field[S, T] {
	if store == nil {
		panic("bind: nil store")
	}
	if get == nil {
		panic("bind: nil get func")
	}
	return &Field[S, T]{store: store, get: get, wrap: wrap}
}

// Get returns the bound value projected from the current committed state.
func (f *Field[S, T]) Get() T {
	return f.get(f.store.Current())
}

// Set wraps v into a change and submits it. The new value is visible through
// Get only after the store commits it.
func (f *Field[S, T]) Set(v T) error {
	if f.wrap == nil {
		return ErrReadOnly
	}
	return f.store.Submit(f.wrap(v))
}

// Watch calls fn with the projected value of every committed state, in commit
// order. The returned func cancels the subscription.
func (f *Field[S, T]) Watch(fn func(T)) func() {
	return f.store.Subscribe(func(state S) {
		fn(f.get(state))
	})
}
