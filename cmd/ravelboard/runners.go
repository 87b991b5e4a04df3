package main

import (
	"context"
	"math"
	"time"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/journal"
)

// alertRunner raises alertRaised when a tick moves a symbol beyond its
// configured threshold percentage. All other changes are ignored.
type alertRunner struct {
	thresholds map[string]float64
}

func (r *alertRunner) Run(ctx context.Context, state board, change ravel.Change) <-chan ravel.Change {
	tick, ok := change.(priceTicked)
	if !ok {
		return nil
	}
	threshold, ok := r.thresholds[tick.Symbol]
	if !ok || threshold <= 0 {
		return nil
	}
	// The tick is already committed, so the quote carries both prices.
	q := state.Quotes[tick.Symbol]
	if q.Prev == 0 {
		return nil
	}
	movePct := math.Abs(q.Price-q.Prev) / q.Prev * 100
	if movePct < threshold {
		return nil
	}
	return ravel.Emit(alertRaised{
		Symbol:  tick.Symbol,
		Price:   q.Price,
		Prev:    q.Prev,
		MovePct: movePct,
		At:      tick.At,
	})
}

// historyRunner answers historyRequested by querying the journal off the
// dispatch loop. With no journal configured it stays silent.
type historyRunner struct {
	journal journal.Journal
	timeout time.Duration
}

func (r *historyRunner) Run(ctx context.Context, _ board, change ravel.Change) <-chan ravel.Change {
	req, ok := change.(historyRequested)
	if !ok || r.journal == nil {
		return nil
	}

	out := make(chan ravel.Change, 1)
	go func() {
		defer close(out)
		qctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		records, err := r.journal.Recent(qctx, req.Limit)
		loaded := historyLoaded{Records: records}
		if err != nil {
			loaded.Err = err.Error()
		}
		out <- loaded
	}()
	return out
}
