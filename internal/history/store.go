// Package history persists session summaries in a local SQLite database.
//
// This is the durable store the core pipeline treats as an external
// collaborator: it records only per-session summaries (never frame data or
// pipeline state), keyed by a generated unique id and a client timestamp.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested entry id does not exist.
var ErrNotFound = errors.New("history: entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	exercise    TEXT NOT NULL,
	reps        INTEGER NOT NULL,
	avg_score   REAL NOT NULL,
	duration_s  REAL NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	recorded_at INTEGER NOT NULL
);
`

// Entry is one stored session summary.
type Entry struct {
	ID        string
	Exercise  string
	Reps      int
	AvgScore  float64
	DurationS float64
	// Source is the recording path the session came from, when known.
	Source     string
	RecordedAt time.Time
}

// Store is a SQLite-backed session history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Append stores a summary and returns its generated id. A zero RecordedAt
// is replaced with the current time.
func (s *Store) Append(e Entry) (string, error) {
	id := uuid.NewString()
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, exercise, reps, avg_score, duration_s, source, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, e.Exercise, e.Reps, e.AvgScore, e.DurationS, e.Source, e.RecordedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("append session: %w", err)
	}
	return id, nil
}

// List returns all stored summaries, most recent first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, exercise, reps, avg_score, duration_s, source, recorded_at
		 FROM sessions ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.ID, &e.Exercise, &e.Reps, &e.AvgScore, &e.DurationS, &e.Source, &ms); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		e.RecordedAt = time.UnixMilli(ms)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return entries, nil
}

// Delete removes the entry with the given id. Returns ErrNotFound if no
// such entry exists.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every stored entry.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
