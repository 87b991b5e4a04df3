package main

import (
	"fmt"
	"time"

	"github.com/RavelOrg/ravel"
	"github.com/RavelOrg/ravel/feed"
	"github.com/RavelOrg/ravel/journal"
)

// maxAlerts bounds the alert list; older alerts fall off the end.
const maxAlerts = 50

// quote is the last observed trade for one symbol.
type quote struct {
	Symbol string
	Price  float64
	Prev   float64
	At     time.Time
}

// alert is one threshold breach, newest first on the board.
type alert struct {
	Symbol  string
	Price   float64
	Prev    float64
	MovePct float64
	At      time.Time
}

// board is the whole application state. Reducers treat it as a value, so the
// quote map and the alert slice are copied before writing.
type board struct {
	Watchlist  []string
	Quotes     map[string]quote
	Alerts     []alert
	Feed       feed.Status
	Note       string
	StartedAt  time.Time
	Now        time.Time
	Ticks      uint64
	History    []journal.Record
	HistoryErr string
}

func newBoard(watchlist []string, started time.Time) board {
	return board{
		Watchlist: watchlist,
		Quotes:    make(map[string]quote, len(watchlist)),
		Feed:      feed.StatusDisconnected,
		StartedAt: started,
		Now:       started,
	}
}

func (b board) Describe() string {
	return fmt.Sprintf("%d quotes, %d alerts, feed %s", len(b.Quotes), len(b.Alerts), b.Feed)
}

// reduceBoard folds market and session changes.
var reduceBoard = ravel.Combine(reduceMarket, reduceSession)

func reduceMarket(s board, c ravel.Change) board {
	switch change := c.(type) {
	case priceTicked:
		quotes := make(map[string]quote, len(s.Quotes)+1)
		for k, v := range s.Quotes {
			quotes[k] = v
		}
		prev := quotes[change.Symbol]
		quotes[change.Symbol] = quote{
			Symbol: change.Symbol,
			Price:  change.Price,
			Prev:   prev.Price,
			At:     change.At,
		}
		s.Quotes = quotes
		s.Ticks++
	case alertRaised:
		alerts := make([]alert, 0, len(s.Alerts)+1)
		alerts = append(alerts, alert{
			Symbol:  change.Symbol,
			Price:   change.Price,
			Prev:    change.Prev,
			MovePct: change.MovePct,
			At:      change.At,
		})
		alerts = append(alerts, s.Alerts...)
		if len(alerts) > maxAlerts {
			alerts = alerts[:maxAlerts]
		}
		s.Alerts = alerts
	case alertsCleared:
		s.Alerts = nil
	}
	return s
}

func reduceSession(s board, c ravel.Change) board {
	switch change := c.(type) {
	case clockTicked:
		s.Now = change.At
	case feedStatusChanged:
		s.Feed = change.Status
	case noteEdited:
		s.Note = change.Note
	case historyLoaded:
		s.History = change.Records
		s.HistoryErr = change.Err
	}
	return s
}
