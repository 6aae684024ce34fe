// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/festival-ballot/models"
)

// ErrNoSnapshot is returned by Latest when nothing has been cached yet.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Store keeps the last known document in a local sqlite file so the
// fallback tier survives process restarts. The remote bin stays
// authoritative; this is never read while the remote store is reachable.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path.
// Safe to call multiple times - the schema uses IF NOT EXISTS.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}

	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
    id TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshot_saved_at ON snapshot(saved_at);
`

// Put stores doc as the new latest snapshot and drops older rows.
func (s *Store) Put(doc models.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO snapshot (id, payload, saved_at)
		VALUES ($1, $2, $3)
	`, id, string(payload), time.Now()); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	// Only the latest snapshot matters
	if _, err := tx.Exec(`DELETE FROM snapshot WHERE id <> $1`, id); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// Latest returns the most recently cached document and when it was saved.
func (s *Store) Latest() (models.Document, time.Time, error) {
	var payload string
	var savedAt time.Time

	err := s.db.QueryRow(`
		SELECT payload, saved_at FROM snapshot
		ORDER BY saved_at DESC
		LIMIT 1
	`).Scan(&payload, &savedAt)

	if err == sql.ErrNoRows {
		return models.Document{}, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return models.Document{}, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return models.Document{}, time.Time{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	doc.Normalize()
	return doc, savedAt, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
