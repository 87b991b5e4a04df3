package ravel

import "time"

// Entry describes one committed change: what was applied, to which store,
// and the state on both sides of the commit.
type Entry struct {
	ID     string
	Seq    uint64
	Time   time.Time
	Store  string
	Change Change
	Before any
	After  any
}

// Recorder receives an Entry after every commit, before effects run. Record
// is called on the dispatch goroutine, so implementations must not block;
// slow sinks should buffer and hand off.
type Recorder interface {
	Record(Entry)
}
