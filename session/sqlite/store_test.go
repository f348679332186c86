package sqlite

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pfpforge/pfp/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	blob := []byte(`{"version":1}`)
	if err := store.Save(ctx, "default", blob); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "default")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("Load = %q, want %q", got, blob)
	}

	if err := store.Delete(ctx, "default"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "default"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Load after delete = %v, want ErrNotFound", err)
	}
}

func TestSaveUpserts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Save(ctx, "slot", []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "slot", []byte("second")); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx, "slot")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("Load = %q, want the upserted blob", got)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Save(ctx, "a", []byte("alpha")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "b", []byte("beta")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(ctx, "a"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("slot a = %v, want ErrNotFound", err)
	}
	got, err := store.Load(ctx, "b")
	if err != nil || string(got) != "beta" {
		t.Errorf("slot b = %q, %v; want beta intact", got, err)
	}
}

func TestDeleteMissingSlotSucceeds(t *testing.T) {
	store := newTestStore(t)
	if err := store.Delete(context.Background(), "never-saved"); err != nil {
		t.Errorf("Delete missing slot = %v, want nil", err)
	}
}
