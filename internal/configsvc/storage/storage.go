// Package storage persists an audit trail of config reloads to SQL,
// selecting a driver by DSN scheme the way
// internal/tooling/build.AutoMigrator opens its migration connection
// with `sql.Open("pgx", dbURL)` in this corpus's Conduit compiler — here
// generalized to three schemes instead of one.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"              // registers the "postgres" driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" driver
)

// Event is one row of the audit trail: a file that was reloaded, the
// outcome, and the content hashes on either side of the change.
type Event struct {
	ID          int64
	Path        string
	PriorHash   string
	NextHash    string
	Valid       bool
	Message     string
	RequestedBy string
	OccurredAt  time.Time
}

// Store wraps a *sql.DB opened against one of the supported drivers.
type Store struct {
	db     *sql.DB
	driver string
}

// Open selects a driver from dsn's scheme (`sqlite3://`, `postgres://`,
// or `pgx://`) and opens a connection, mirroring the driver-by-DSN
// dispatch auto_migrate.go performs for a single hardcoded driver.
func Open(dsn string) (*Store, error) {
	driver, connDSN, err := driverForDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, connDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	return &Store{db: db, driver: driver}, nil
}

// OpenDB wraps an already-open *sql.DB, used by tests against
// DATA-DOG/go-sqlmock.
func OpenDB(db *sql.DB, driver string) *Store { return &Store{db: db, driver: driver} }

func driverForDSN(dsn string) (driver, connDSN string, err error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite3://"):
		return "sqlite3", strings.TrimPrefix(dsn, "sqlite3://"), nil
	case strings.HasPrefix(dsn, "pgx://"):
		return "pgx", "postgres://" + strings.TrimPrefix(dsn, "pgx://"), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	default:
		return "", "", fmt.Errorf("storage: unrecognized DSN scheme in %q", dsn)
	}
}

// Migrate creates the audit_log table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver != "sqlite3" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS audit_log (
			id `+idColumn+`,
			path TEXT NOT NULL,
			prior_hash TEXT NOT NULL,
			next_hash TEXT NOT NULL,
			valid BOOLEAN NOT NULL,
			message TEXT NOT NULL,
			requested_by TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	return nil
}

// Record inserts one audit event.
func (s *Store) Record(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (path, prior_hash, next_hash, valid, message, requested_by, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Path, e.PriorHash, e.NextHash, e.Valid, e.Message, e.RequestedBy, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("storage: record event: %w", err)
	}
	return nil
}

// Recent returns the last limit events for path, most recent first.
func (s *Store) Recent(ctx context.Context, path string, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, prior_hash, next_hash, valid, message, requested_by, occurred_at
		 FROM audit_log WHERE path = $1 ORDER BY occurred_at DESC LIMIT $2`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query recent events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Path, &e.PriorHash, &e.NextHash, &e.Valid, &e.Message, &e.RequestedBy, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("storage: scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }
