package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/journal"
)

func waitFor(t *testing.T, d time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func tickedBoard(symbol string, prev, price float64) board {
	s := newBoard([]string{symbol}, time.Now())
	s.Quotes = map[string]quote{
		symbol: {Symbol: symbol, Price: price, Prev: prev, At: time.Now()},
	}
	return s
}

func TestAlertRunnerRaisesOnThresholdBreach(t *testing.T) {
	runner := &alertRunner{thresholds: map[string]float64{"BTCUSDT": 0.5}}
	state := tickedBoard("BTCUSDT", 50_000, 50_500)

	ch := runner.Run(context.Background(), state, priceTicked{Symbol: "BTCUSDT", Price: 50_500})
	if ch == nil {
		t.Fatal("runner ignored a breaching tick")
	}

	change, ok := <-ch
	if !ok {
		t.Fatal("runner emitted nothing")
	}
	raised, ok := change.(alertRaised)
	if !ok {
		t.Fatalf("emitted %T, want alertRaised", change)
	}
	if raised.Symbol != "BTCUSDT" || raised.Prev != 50_000 || raised.Price != 50_500 {
		t.Errorf("alert = %+v", raised)
	}
	if raised.MovePct < 0.99 || raised.MovePct > 1.01 {
		t.Errorf("move = %v, want ~1.0", raised.MovePct)
	}
	if _, more := <-ch; more {
		t.Error("runner emitted a second change")
	}
}

func TestAlertRunnerIgnores(t *testing.T) {
	runner := &alertRunner{thresholds: map[string]float64{"BTCUSDT": 0.5}}

	// Not a tick.
	if ch := runner.Run(context.Background(), board{}, noteEdited{Note: "x"}); ch != nil {
		t.Error("runner reacted to a note edit")
	}

	// Symbol without a threshold.
	state := tickedBoard("ETHUSDT", 3_000, 3_100)
	if ch := runner.Run(context.Background(), state, priceTicked{Symbol: "ETHUSDT", Price: 3_100}); ch != nil {
		t.Error("runner reacted to an unwatched symbol")
	}

	// First tick has no previous price.
	state = tickedBoard("BTCUSDT", 0, 50_000)
	if ch := runner.Run(context.Background(), state, priceTicked{Symbol: "BTCUSDT", Price: 50_000}); ch != nil {
		t.Error("runner alerted on the first tick")
	}

	// Move below the threshold.
	state = tickedBoard("BTCUSDT", 50_000, 50_100)
	if ch := runner.Run(context.Background(), state, priceTicked{Symbol: "BTCUSDT", Price: 50_100}); ch != nil {
		t.Error("runner alerted below the threshold")
	}
}

func TestAlertFlowThroughStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := ravel.New(
		newBoard([]string{"BTCUSDT"}, time.Now()),
		reduceBoard,
		ravel.WithRunner[board](&alertRunner{thresholds: map[string]float64{"BTCUSDT": 0.5}}),
	)
	go store.Run(ctx)
	defer store.Close()

	if err := store.Submit(priceTicked{Symbol: "BTCUSDT", Price: 50_000, At: time.Now()}); err != nil {
		t.Fatalf("Failed to submit tick: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return store.Current().Ticks == 1
	}, "first tick never committed")

	if err := store.Submit(priceTicked{Symbol: "BTCUSDT", Price: 50_500, At: time.Now()}); err != nil {
		t.Fatalf("Failed to submit tick: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		return len(store.Current().Alerts) == 1
	}, "alert never reached the board")

	got := store.Current().Alerts[0]
	if got.Symbol != "BTCUSDT" || got.Prev != 50_000 {
		t.Errorf("alert = %+v", got)
	}
}

// memJournal is an in-memory journal.Journal for runner tests.
type memJournal struct {
	mu      sync.Mutex
	records []journal.Record
}

func (m *memJournal) Append(_ context.Context, r journal.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *memJournal) Recent(_ context.Context, limit int) ([]journal.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]journal.Record, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *memJournal) Close() error { return nil }

func TestHistoryRunnerLoadsRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem := &memJournal{records: []journal.Record{
		{Seq: 1, Kind: "main.priceTicked"},
		{Seq: 2, Kind: "main.alertRaised"},
	}}

	store := ravel.New(
		newBoard(nil, time.Now()),
		reduceBoard,
		ravel.WithRunner[board](&historyRunner{journal: mem, timeout: time.Second}),
	)
	go store.Run(ctx)
	defer store.Close()

	if err := store.Submit(historyRequested{Limit: 10}); err != nil {
		t.Fatalf("Failed to submit request: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		return len(store.Current().History) == 2
	}, "history never loaded")

	if got := store.Current().HistoryErr; got != "" {
		t.Errorf("history err = %q", got)
	}
}

func TestHistoryRunnerWithoutJournal(t *testing.T) {
	runner := &historyRunner{journal: nil, timeout: time.Second}
	if ch := runner.Run(context.Background(), board{}, historyRequested{Limit: 5}); ch != nil {
		t.Error("runner answered with no journal configured")
	}
}
