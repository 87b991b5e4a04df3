// Package sqlitejournal stores commit records in a local sqlite database.
package sqlitejournal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/RavelOrg/ravel/journal"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeFormat pads nanoseconds to a fixed width so the TEXT column sorts
// chronologically. RFC3339Nano drops trailing zeros, which would order a
// whole-second timestamp after a sub-second one.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Journal implements journal.Journal over a sqlite file.
type Journal struct {
	db *sql.DB
}

// Open opens the journal database at path, creating it and applying pending
// migrations as needed.
func Open(path string) (*Journal, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal migrations: %w", err)
	}
	return &Journal{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	// Not closing m here: closing the instance would close db with it.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Append implements journal.Journal.
func (j *Journal) Append(ctx context.Context, rec journal.Record) error {
	const insertSQL = `
		INSERT INTO commits (id, store, seq, kind, change, before_state, after_state, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := j.db.ExecContext(ctx, insertSQL,
		rec.ID,
		rec.Store,
		rec.Seq,
		rec.Kind,
		rec.Change,
		rec.Before,
		rec.After,
		rec.At.UTC().Format(timeFormat),
	)
	return err
}

// Recent implements journal.Journal, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]journal.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, store, seq, kind, change, before_state, after_state, at
		FROM commits
		ORDER BY at DESC, seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]journal.Record, 0, limit)
	for rows.Next() {
		var rec journal.Record
		var at string
		err := rows.Scan(
			&rec.ID, &rec.Store, &rec.Seq, &rec.Kind,
			&rec.Change, &rec.Before, &rec.After, &at,
		)
		if err != nil {
			return nil, err
		}
		if t, perr := time.Parse(timeFormat, at); perr == nil {
			rec.At = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
