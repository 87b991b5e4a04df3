package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RavelOrg/ravel"
)

// ErrDropped is reported through the error hook when the pending buffer is
// full and a record had to be discarded.
var ErrDropped = errors.New("journal record dropped")

const (
	// DefaultWriterBuffer is the default size of the pending record buffer
	DefaultWriterBuffer = 256

	// DefaultAppendTimeout bounds each journal append
	DefaultAppendTimeout = 5 * time.Second
)

// Writer adapts a Journal to the ravel.Recorder hook. Record hands entries
// to a background goroutine, so the dispatch loop never waits on storage;
// when the buffer is full the entry is dropped and the error hook is told.
type Writer struct {
	journal Journal
	timeout time.Duration
	onError func(error)

	pending chan Record

	closeOnce sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// WriterOption configures a Writer
type WriterOption func(*Writer)

// WithBuffer sets the pending record buffer size
func WithBuffer(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.pending = make(chan Record, n)
		}
	}
}

// WithAppendTimeout bounds each append call
func WithAppendTimeout(d time.Duration) WriterOption {
	return func(w *Writer) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithErrorHook sets the callback for append failures and dropped records
func WithErrorHook(fn func(error)) WriterOption {
	return func(w *Writer) {
		w.onError = fn
	}
}

// NewWriter starts a Writer appending to j. The journal stays owned by the
// caller; Close stops the writer without closing it.
func NewWriter(j Journal, opts ...WriterOption) *Writer {
	w := &Writer{
		journal: j,
		timeout: DefaultAppendTimeout,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.pending == nil {
		w.pending = make(chan Record, DefaultWriterBuffer)
	}

	go w.loop()
	return w
}

// Record implements ravel.Recorder. It never blocks.
func (w *Writer) Record(e ravel.Entry) {
	select {
	case <-w.quit:
		return
	default:
	}

	select {
	case w.pending <- FromEntry(e):
	default:
		w.fail(fmt.Errorf("%w: seq %d", ErrDropped, e.Seq))
	}
}

// Close flushes buffered records and stops the background goroutine.
func (w *Writer) Close() {
	w.closeOnce.Do(func() {
		close(w.quit)
	})
	<-w.done

	// A Record call that passed the quit check as Close fired can buffer an
	// entry after the loop's final sweep. Sweep once more here so it is
	// appended rather than lost.
	for {
		select {
		case rec := <-w.pending:
			w.append(rec)
		default:
			return
		}
	}
}

func (w *Writer) loop() {
	defer close(w.done)

	for {
		select {
		case rec := <-w.pending:
			w.append(rec)

		case <-w.quit:
			// Drain whatever was buffered before the close
			for {
				select {
				case rec := <-w.pending:
					w.append(rec)
				default:
					return
				}
			}
		}
	}
}

func (w *Writer) append(rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.journal.Append(ctx, rec); err != nil {
		w.fail(fmt.Errorf("journal append: %w", err))
	}
}

func (w *Writer) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
