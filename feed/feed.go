// Package feed bridges external change producers into a store: arbitrary
// channels, periodic tickers, and websocket streams. Feeds are lossy toward
// a saturated store: a full queue drops the change rather than stalling the
// producer.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/RavelOrg/ravel"
)

const tickerBufferSize = 10

// SubmitFunc hands one change to a store, typically Store.Submit.
type SubmitFunc func(ravel.Change) error

// Forward drains src into submit until ctx is done, src closes, or the
// target store reports it is closed. Changes rejected with ErrQueueFull are
// dropped so the producer never stalls on a saturated consumer.
func Forward(ctx context.Context, src <-chan ravel.Change, submit SubmitFunc) error {
	for {
		select {
		case change, ok := <-src:
			if !ok {
				return nil
			}
			if change == nil {
				continue
			}
			if err := submit(change); errors.Is(err, ravel.ErrClosed) {
				return err
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Ticker emits a change built from each tick time at regular intervals
// until ctx is done, then closes the channel. The channel is buffered and
// ticks are dropped when the buffer is full.
func Ticker(ctx context.Context, interval time.Duration, build func(time.Time) ravel.Change) <-chan ravel.Change {
	ch := make(chan ravel.Change, tickerBufferSize)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case t := <-ticker.C:
				select {
				case ch <- build(t):
				default:
					// Non-blocking: drop if channel full
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}
