// Package journal persists committed changes. A Journal is the storage
// interface; Writer adapts one to the ravel.Recorder hook without ever
// blocking dispatch on storage.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RavelOrg/ravel"
)

// Record is the flattened, storable form of one commit. Values are rendered
// to text at commit time, so reading a journal back needs no knowledge of
// the state types involved.
type Record struct {
	ID     string
	Store  string
	Seq    uint64
	Kind   string
	Change string
	Before string
	After  string
	At     time.Time
}

// FromEntry flattens a dispatch entry into a Record.
func FromEntry(e ravel.Entry) Record {
	id := e.ID
	if id == "" {
		id = uuid.New().String()
	}
	at := e.Time
	if at.IsZero() {
		at = time.Now()
	}
	return Record{
		ID:     id,
		Store:  e.Store,
		Seq:    e.Seq,
		Kind:   fmt.Sprintf("%T", e.Change),
		Change: ravel.DescribeValue(e.Change),
		Before: ravel.DescribeValue(e.Before),
		After:  ravel.DescribeValue(e.After),
		At:     at,
	}
}

// Journal is a durable sink for commit records.
type Journal interface {
	// Append stores one record.
	Append(ctx context.Context, rec Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close releases the journal's resources.
	Close() error
}
