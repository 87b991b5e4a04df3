// Package pgjournal stores commit records in Postgres for deployments where
// several processes share one journal.
package pgjournal

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RavelOrg/ravel/journal"
)

// Journal implements journal.Journal over a pgx connection pool.
type Journal struct {
	db *pgxpool.Pool
}

// New creates a Journal over an existing pool. The pool stays owned by the
// caller; Close does not release it.
func New(db *pgxpool.Pool) *Journal {
	return &Journal{db: db}
}

// EnsureSchema creates the commits table and index when missing.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()

	const schemaSQL = `
		CREATE TABLE IF NOT EXISTS ravel_commits (
			id           TEXT PRIMARY KEY,
			store        TEXT NOT NULL,
			seq          BIGINT NOT NULL,
			kind         TEXT NOT NULL,
			change       TEXT NOT NULL,
			before_state TEXT NOT NULL,
			after_state  TEXT NOT NULL,
			at           TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_ravel_commits_at ON ravel_commits (at DESC);
	`
	_, err := j.db.Exec(ctx, schemaSQL)
	return err
}

// Append implements journal.Journal. Replayed records are ignored rather
// than duplicated.
func (j *Journal) Append(ctx context.Context, rec journal.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()

	const insertSQL = `
		INSERT INTO ravel_commits (
			id, store, seq, kind,
			change, before_state, after_state, at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING;
	`
	_, err := j.db.Exec(
		ctx, insertSQL,
		rec.ID,
		rec.Store,
		rec.Seq,
		rec.Kind,
		rec.Change,
		rec.Before,
		rec.After,
		rec.At,
	)
	return err
}

// Recent implements journal.Journal, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]journal.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := j.db.Query(ctx, `
		SELECT id, store, seq, kind, change, before_state, after_state, at
		FROM ravel_commits
		ORDER BY at DESC, seq DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]journal.Record, 0, limit)
	for rows.Next() {
		var rec journal.Record
		err := rows.Scan(
			&rec.ID, &rec.Store, &rec.Seq, &rec.Kind,
			&rec.Change, &rec.Before, &rec.After, &rec.At,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close implements journal.Journal. The pool is owned by the caller, so
// there is nothing to release here.
func (j *Journal) Close() error {
	return nil
}
