// Package history is the durable, append-only log of completed review
// sessions, stored in a SQLite database inside the vault root.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vaultsweep/internal/review"
)

// FileName is the history database's name inside the vault root.
const FileName = ".vaultsweep-history.db"

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id             TEXT PRIMARY KEY,
	started_at     INTEGER NOT NULL,
	finished_at    INTEGER NOT NULL,
	kept           INTEGER NOT NULL,
	deleted        INTEGER NOT NULL,
	enhanced       INTEGER NOT NULL,
	skipped        INTEGER NOT NULL,
	unreadable     INTEGER NOT NULL,
	enhanced_paths TEXT NOT NULL,
	deleted_paths  TEXT NOT NULL
);
`

// Store wraps the SQLite history database.
type Store struct {
	conn *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Append inserts one completed-session record. Rows are never updated or
// deleted. A missing ID is assigned here.
func (s *Store) Append(rec review.SessionRecord) error {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	enhanced, err := json.Marshal(rec.EnhancedPaths)
	if err != nil {
		return fmt.Errorf("serializing enhanced paths: %w", err)
	}
	deleted, err := json.Marshal(rec.DeletedPaths)
	if err != nil {
		return fmt.Errorf("serializing deleted paths: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO sessions
			(id, started_at, finished_at, kept, deleted, enhanced, skipped, unreadable, enhanced_paths, deleted_paths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.StartedAt.UnixMilli(),
		rec.FinishedAt.UnixMilli(),
		rec.Counts.Kept,
		rec.Counts.Deleted,
		rec.Counts.Enhanced,
		rec.Counts.Skipped,
		rec.Counts.Unreadable,
		string(enhanced),
		string(deleted),
	)
	if err != nil {
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

// List returns the most recent sessions, newest first. limit <= 0 means
// no limit.
func (s *Store) List(limit int) ([]review.SessionRecord, error) {
	query := `
		SELECT id, started_at, finished_at, kept, deleted, enhanced, skipped, unreadable, enhanced_paths, deleted_paths
		FROM sessions ORDER BY finished_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var out []review.SessionRecord
	for rows.Next() {
		var rec review.SessionRecord
		var startedMS, finishedMS int64
		var enhanced, deleted string
		if err := rows.Scan(
			&rec.ID, &startedMS, &finishedMS,
			&rec.Counts.Kept, &rec.Counts.Deleted, &rec.Counts.Enhanced,
			&rec.Counts.Skipped, &rec.Counts.Unreadable,
			&enhanced, &deleted,
		); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedMS).UTC()
		rec.FinishedAt = time.UnixMilli(finishedMS).UTC()
		if err := json.Unmarshal([]byte(enhanced), &rec.EnhancedPaths); err != nil {
			return nil, fmt.Errorf("parsing enhanced paths: %w", err)
		}
		if err := json.Unmarshal([]byte(deleted), &rec.DeletedPaths); err != nil {
			return nil, fmt.Errorf("parsing deleted paths: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
