package ravel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrQueueFull is returned when the change queue is saturated
	ErrQueueFull = errors.New("change queue full")

	// ErrClosed is returned when submitting to a closed store
	ErrClosed = errors.New("store closed")

	// ErrNilChange is returned when submitting a nil change
	ErrNilChange = errors.New("nil change")
)

const (
	// DefaultQueueSize is the default buffer size for the change queue
	DefaultQueueSize = 1024
)

// Store is a goroutine-based state container that applies changes
// sequentially. One dispatch goroutine, started by Run, dequeues changes,
// reduces them against the committed state, records the commit, and fans it
// out to the effect runners; follow-up changes re-enter the same queue and
// are indistinguishable from external submissions.
type Store[S any] struct {
	id      string
	name    string
	queue   chan Change
	runners []EffectRunner[S]
	rec     Recorder

	state *container[S]
	seq   uint64

	running atomic.Bool
	wg      sync.WaitGroup

	closeOnce sync.Once
	quit      chan struct{} // closed by Close
	done      chan struct{} // closed when the dispatch loop has exited
}

// New creates a Store holding initial and applying changes through reducer.
func New[S any](initial S, reducer Reducer[S], opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		id:    uuid.New().String()[:8],
		state: newContainer(initial, reducer),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.queue == nil {
		s.queue = make(chan Change, DefaultQueueSize)
	}
	if s.name == "" {
		s.name = s.id
	}

	return s
}

// Run executes the dispatch loop
// This blocks until ctx is cancelled or Close is called, so callers
// normally start it with go store.Run(ctx). Calling Run twice panics.
func (s *Store[S]) Run(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		panic("ravel: Store.Run called twice")
	}

	ctx, cancel := context.WithCancel(ctx)

	// Teardown order matters: cancel unblocks runner forwarding, Wait lets
	// the forwarders drain, and only then is done closed.
	defer close(s.done)
	defer s.wg.Wait()
	defer cancel()

	for {
		select {
		case change := <-s.queue:
			s.step(ctx, change)

		case <-s.quit:
			return

		case <-ctx.Done():
			return
		}
	}
}

// step applies one change and fans the commit out to the runners.
func (s *Store[S]) step(ctx context.Context, change Change) {
	before, after := s.state.apply(change)

	s.seq++
	if s.rec != nil {
		s.rec.Record(Entry{
			ID:     uuid.New().String(),
			Seq:    s.seq,
			Time:   time.Now(),
			Store:  s.name,
			Change: change,
			Before: before,
			After:  after,
		})
	}

	s.state.notify(after)

	// Each runner gets its own goroutine per change so a slow effect never
	// stalls dispatch or its peers.
	for _, r := range s.runners {
		s.wg.Add(1)
		go s.forward(ctx, r, after, change)
	}
}

// forward invokes one runner and feeds its follow-up changes back into the
// queue. The enqueue blocks rather than drops so effect results are never
// lost while the store lives; results arriving after teardown are dropped.
func (s *Store[S]) forward(ctx context.Context, r EffectRunner[S], state S, change Change) {
	defer s.wg.Done()

	out := r.Run(ctx, state, change)
	if out == nil {
		return
	}

	for next := range out {
		if next == nil {
			continue
		}
		select {
		case s.queue <- next:
		case <-s.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Submit enqueues a change for dispatch. It never blocks: a saturated queue
// returns ErrQueueFull and a closed store returns ErrClosed. Safe to call
// from any goroutine.
func (s *Store[S]) Submit(change Change) error {
	if change == nil {
		return ErrNilChange
	}

	select {
	case <-s.quit:
		return ErrClosed
	case <-s.done:
		return ErrClosed
	default:
	}

	select {
	case s.queue <- change:
		return nil
	default:
		return ErrQueueFull
	}
}

// Current returns the last committed state. The value is always a complete
// reduction result, never a partial one.
func (s *Store[S]) Current() S {
	return s.state.current()
}

// Subscribe registers fn to be called with each newly committed state. fn
// runs on the dispatch goroutine in registration order, so it must return
// quickly; slow consumers should hand off. The returned function cancels
// the subscription.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	return s.state.subscribe(fn)
}

// Close stops the dispatch loop. Queued changes and in-flight effect
// results are dropped, never applied to a closed store. Close is idempotent
// and safe from any goroutine.
func (s *Store[S]) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
}

// Done is closed once the dispatch loop has fully exited and all runner
// forwarding has drained.
func (s *Store[S]) Done() <-chan struct{} {
	return s.done
}

// ID returns the unique store instance id
func (s *Store[S]) ID() string {
	return s.id
}

// Name returns the diagnostic name, which defaults to the id
func (s *Store[S]) Name() string {
	return s.name
}
