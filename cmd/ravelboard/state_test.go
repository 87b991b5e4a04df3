package main

import (
	"testing"
	"time"

	"github.com/RavelOrg/ravel/feed"
	"github.com/RavelOrg/ravel/journal"
)

func TestReduceMarketFoldsTicks(t *testing.T) {
	start := time.Now()
	s0 := newBoard([]string{"BTCUSDT", "ETHUSDT"}, start)

	s1 := reduceMarket(s0, priceTicked{Symbol: "BTCUSDT", Price: 50_000, At: start})
	s2 := reduceMarket(s1, priceTicked{Symbol: "BTCUSDT", Price: 50_500, At: start.Add(time.Second)})

	q := s2.Quotes["BTCUSDT"]
	if q.Price != 50_500 {
		t.Errorf("price = %v, want 50500", q.Price)
	}
	if q.Prev != 50_000 {
		t.Errorf("prev = %v, want 50000", q.Prev)
	}
	if s2.Ticks != 2 {
		t.Errorf("ticks = %d, want 2", s2.Ticks)
	}

	// Earlier values are untouched: the reducer copies before writing.
	if len(s0.Quotes) != 0 {
		t.Errorf("original state mutated: %d quotes", len(s0.Quotes))
	}
	if s1.Quotes["BTCUSDT"].Price != 50_000 {
		t.Errorf("intermediate state mutated: price = %v", s1.Quotes["BTCUSDT"].Price)
	}
}

func TestReduceMarketAlerts(t *testing.T) {
	s := newBoard([]string{"BTCUSDT"}, time.Now())

	s = reduceMarket(s, alertRaised{Symbol: "BTCUSDT", Price: 50_500, Prev: 50_000, MovePct: 1.0})
	s = reduceMarket(s, alertRaised{Symbol: "BTCUSDT", Price: 49_000, Prev: 50_500, MovePct: 2.97})

	if len(s.Alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(s.Alerts))
	}
	if s.Alerts[0].Price != 49_000 {
		t.Errorf("newest alert first: got price %v", s.Alerts[0].Price)
	}

	s = reduceMarket(s, alertsCleared{})
	if len(s.Alerts) != 0 {
		t.Errorf("alerts not cleared: %d left", len(s.Alerts))
	}
}

func TestReduceMarketCapsAlerts(t *testing.T) {
	s := newBoard([]string{"BTCUSDT"}, time.Now())
	for i := 0; i < maxAlerts+10; i++ {
		s = reduceMarket(s, alertRaised{Symbol: "BTCUSDT", MovePct: float64(i)})
	}
	if len(s.Alerts) != maxAlerts {
		t.Errorf("alerts = %d, want %d", len(s.Alerts), maxAlerts)
	}
	if s.Alerts[0].MovePct != float64(maxAlerts+9) {
		t.Errorf("newest alert lost: MovePct = %v", s.Alerts[0].MovePct)
	}
}

func TestReduceSession(t *testing.T) {
	start := time.Now()
	s := newBoard(nil, start)

	now := start.Add(5 * time.Second)
	s = reduceSession(s, clockTicked{At: now})
	if !s.Now.Equal(now) {
		t.Errorf("now = %v, want %v", s.Now, now)
	}

	s = reduceSession(s, feedStatusChanged{Status: feed.StatusConnected})
	if s.Feed != feed.StatusConnected {
		t.Errorf("feed = %v, want connected", s.Feed)
	}

	s = reduceSession(s, noteEdited{Note: "watch the wick"})
	if s.Note != "watch the wick" {
		t.Errorf("note = %q", s.Note)
	}

	s = reduceSession(s, historyLoaded{Records: []journal.Record{{Seq: 1}, {Seq: 2}}})
	if len(s.History) != 2 || s.HistoryErr != "" {
		t.Errorf("history = %d records, err %q", len(s.History), s.HistoryErr)
	}

	s = reduceSession(s, historyLoaded{Err: "no such table"})
	if s.HistoryErr != "no such table" {
		t.Errorf("history err = %q", s.HistoryErr)
	}
}

func TestReduceBoardIgnoresUnknownChanges(t *testing.T) {
	s := newBoard([]string{"BTCUSDT"}, time.Now())
	s.Note = "keep me"

	got := reduceBoard(s, historyRequested{Limit: 10})
	if got.Note != "keep me" || got.Ticks != 0 {
		t.Errorf("state changed by a request change: %+v", got)
	}
}
