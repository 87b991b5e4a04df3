package main

import (
	"fmt"
	"time"

	"github.com/RavelOrg/ravel/feed"
	"github.com/RavelOrg/ravel/journal"
)

// priceTicked lands one trade tick on the board.
type priceTicked struct {
	Symbol string
	Price  float64
	At     time.Time
}

func (priceTicked) Change() {}

func (c priceTicked) Describe() string {
	return fmt.Sprintf("%s @ %.2f", c.Symbol, c.Price)
}

// clockTicked advances the uptime clock.
type clockTicked struct {
	At time.Time
}

func (clockTicked) Change() {}

// feedStatusChanged records a connection transition.
type feedStatusChanged struct {
	Status feed.Status
}

func (feedStatusChanged) Change() {}

func (c feedStatusChanged) Describe() string {
	return "feed " + c.Status.String()
}

// alertRaised flags a tick that moved a symbol beyond its threshold.
type alertRaised struct {
	Symbol  string
	Price   float64
	Prev    float64
	MovePct float64
	At      time.Time
}

func (alertRaised) Change() {}

func (c alertRaised) Describe() string {
	return fmt.Sprintf("%s moved %.2f%%", c.Symbol, c.MovePct)
}

// alertsCleared empties the alert list.
type alertsCleared struct{}

func (alertsCleared) Change() {}

// noteEdited replaces the board note.
type noteEdited struct {
	Note string
}

func (noteEdited) Change() {}

// historyRequested asks the journal runner for recent commits.
type historyRequested struct {
	Limit int
}

func (historyRequested) Change() {}

// historyLoaded delivers the journal query result.
type historyLoaded struct {
	Records []journal.Record
	Err     string
}

func (historyLoaded) Change() {}

func (c historyLoaded) Describe() string {
	if c.Err != "" {
		return "history failed: " + c.Err
	}
	return fmt.Sprintf("%d history records", len(c.Records))
}
