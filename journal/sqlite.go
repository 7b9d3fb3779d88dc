package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a SQLite-backed store. Use ":memory:"
// for an ephemeral database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS events (
		stream    TEXT    NOT NULL,
		version   INTEGER NOT NULL,
		id        TEXT    NOT NULL,
		type      TEXT    NOT NULL,
		data      BLOB,
		timestamp TEXT    NOT NULL,
		PRIMARY KEY (stream, version)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append adds events to a stream.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, stream)
	if err != nil {
		return 0, err
	}
	if expectedVersion != current {
		return 0, ErrConcurrencyConflict
	}

	for _, event := range events {
		current++
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, data, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, current, event.ID, event.Type, []byte(event.Data), event.Timestamp.Format(time.RFC3339Nano))
		if err != nil {
			return 0, fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return current, nil
}

// Read returns events for a stream starting at fromVersion.
func (s *SQLiteStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, timestamp FROM events WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, fromVersion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{Stream: stream}
		var data []byte
		var ts string
		if err := rows.Scan(&event.Version, &event.ID, &event.Type, &data, &ts); err != nil {
			return nil, err
		}
		event.Data = data
		event.Timestamp = parseTimestamp(ts)
		events = append(events, event)
	}
	return events, rows.Err()
}

// StreamVersion returns the stream's current version.
func (s *SQLiteStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream)
	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func streamVersionTx(ctx context.Context, tx *sql.Tx, stream string) (int, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream)
	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}
