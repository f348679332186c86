// Package filesystem stores session blobs as one file per slot under a base
// directory.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfpforge/pfp/session"
)

const fileExt = ".pfpsession"

// Store persists sessions under basePath, one file per slot.
type Store struct {
	basePath string
}

// NewStore creates the base directory if needed and returns a store over it.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("session filesystem store: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes the blob to the slot file, replacing any previous contents.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated slot behind.
func (s *Store) Save(ctx context.Context, name string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.slotPath(name)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("session filesystem store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("session filesystem store: %w", err)
	}
	return nil
}

// Load reads the slot file. A missing slot is session.ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.slotPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: slot %q", session.ErrNotFound, name)
		}
		return nil, fmt.Errorf("session filesystem store: %w", err)
	}
	return data, nil
}

// Delete removes the slot file. Deleting a missing slot succeeds.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.slotPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session filesystem store: %w", err)
	}
	return nil
}

// slotPath maps a slot name to a file path. Names must be plain identifiers;
// anything that could escape the base directory is rejected.
func (s *Store) slotPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("session filesystem store: invalid slot name %q", name)
	}
	return filepath.Join(s.basePath, name+fileExt), nil
}
