package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/RavelOrg/ravel"
)

var (
	// ErrUnknownRoute is returned when the table cannot resolve a route
	ErrUnknownRoute = errors.New("unknown route")

	// ErrUnknownLocator is returned when the table cannot resolve a locator
	ErrUnknownLocator = errors.New("unknown locator")
)

// stepChange carries one resolved step through the store queue.
type stepChange[R any] struct {
	step Step[R]
}

func (stepChange[R]) Change() {}

// Router drives navigation state through its own ravel.Store. Routes are
// resolved at submit time, so an unknown destination fails fast at the call
// site instead of surfacing mid-dispatch.
type Router[R any] struct {
	store *ravel.Store[R]
	table Table[R]
}

// New creates a Router over the given navigation state and routing table.
// Options are passed through to the underlying store.
func New[R any](initial R, table Table[R], opts ...ravel.Option[R]) *Router[R] {
	return &Router[R]{
		store: ravel.New(initial, reduce[R], opts...),
		table: table,
	}
}

// reduce applies resolved steps. The router's store carries nothing else,
// so any other change passes through untouched.
func reduce[R any](state R, change ravel.Change) R {
	if sc, ok := change.(stepChange[R]); ok {
		return sc.step.run(state)
	}
	return state
}

// Run executes the underlying dispatch loop
// This blocks until ctx is cancelled or Close is called
func (r *Router[R]) Run(ctx context.Context) {
	r.store.Run(ctx)
}

// Go navigates to the given route, returning ErrUnknownRoute when the table
// cannot resolve it.
func (r *Router[R]) Go(rt Route) error {
	step, ok := r.table.Resolve(rt)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, ravel.DescribeValue(rt))
	}
	return r.store.Submit(stepChange[R]{step: step})
}

// Open navigates to an externally supplied locator, returning
// ErrUnknownLocator when the table cannot place it.
func (r *Router[R]) Open(loc Locator) error {
	step, ok := r.table.Locate(loc)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownLocator, loc)
	}
	return r.store.Submit(stepChange[R]{step: step})
}

// Current returns the committed navigation state
func (r *Router[R]) Current() R {
	return r.store.Current()
}

// Subscribe registers fn for committed navigation states, returning the
// cancel function.
func (r *Router[R]) Subscribe(fn func(R)) func() {
	return r.store.Subscribe(fn)
}

// Close stops the router's dispatch loop
func (r *Router[R]) Close() {
	r.store.Close()
}

// Done is closed once the dispatch loop has exited
func (r *Router[R]) Done() <-chan struct{} {
	return r.store.Done()
}
