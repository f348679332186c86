// Package memory keeps session blobs in process memory. Useful as a default
// when no persistence is configured, and in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pfpforge/pfp/session"
)

// Store holds session blobs in a map guarded by a mutex.
type Store struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Save stores a copy of the blob under the slot name.
func (s *Store) Save(ctx context.Context, name string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = cp
	return nil
}

// Load returns a copy of the stored blob, or session.ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.slots[name]
	if !ok {
		return nil, fmt.Errorf("%w: slot %q", session.ErrNotFound, name)
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

// Delete removes the slot. Deleting a missing slot succeeds.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, name)
	return nil
}
