package ravel

import "sync"

// container owns the committed state value. apply and notify run only on
// the dispatch goroutine; current and subscribe are safe from anywhere.
type container[S any] struct {
	reducer Reducer[S]

	mu    sync.RWMutex
	state S

	subMu sync.Mutex
	subs  []*subscriber[S]
}

type subscriber[S any] struct {
	fn func(S)
}

func newContainer[S any](initial S, reducer Reducer[S]) *container[S] {
	return &container[S]{
		reducer: reducer,
		state:   initial,
	}
}

// current returns the last committed state
func (c *container[S]) current() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// apply reduces one change and commits the result, returning both sides of
// the commit. Only the dispatch goroutine may call it, so reductions can
// never interleave and readers only ever observe complete results.
func (c *container[S]) apply(change Change) (before, after S) {
	c.mu.RLock()
	before = c.state
	c.mu.RUnlock()

	after = c.reducer(before, change)

	c.mu.Lock()
	c.state = after
	c.mu.Unlock()

	return before, after
}

// subscribe registers fn for post-commit notification and returns its
// cancel function.
func (c *container[S]) subscribe(fn func(S)) func() {
	sub := &subscriber[S]{fn: fn}

	c.subMu.Lock()
	c.subs = append(c.subs, sub)
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.subs {
			if s == sub {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// notify pushes a committed state to subscribers in registration order.
func (c *container[S]) notify(state S) {
	c.subMu.Lock()
	subs := make([]*subscriber[S], len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(state)
	}
}
