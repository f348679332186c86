// Package sqlite stores session blobs in a single-table SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pfpforge/pfp/session"
)

// Store persists sessions in a sessions table keyed by slot name.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at dataSourceName and
// ensures the sessions table exists.
func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("session sqlite store: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS sessions (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("session sqlite store: create table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the blob under the slot name.
func (s *Store) Save(ctx context.Context, name string, blob []byte) error {
	if name == "" {
		return errors.New("session sqlite store: empty slot name")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		name, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("session sqlite store: save %q: %w", name, err)
	}
	return nil
}

// Load reads the blob for the slot name. A missing slot is
// session.ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM sessions WHERE name = ?", name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: slot %q", session.ErrNotFound, name)
		}
		return nil, fmt.Errorf("session sqlite store: load %q: %w", name, err)
	}
	return data, nil
}

// Delete removes the slot. Deleting a missing slot succeeds.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE name = ?", name); err != nil {
		return fmt.Errorf("session sqlite store: delete %q: %w", name, err)
	}
	return nil
}
