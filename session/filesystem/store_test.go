package filesystem

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfpforge/pfp/session"
)

func TestSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

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

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

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
		t.Errorf("Load = %q, want the overwritten blob", got)
	}
}

func TestDeleteMissingSlotSucceeds(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Delete(context.Background(), "never-saved"); err != nil {
		t.Errorf("Delete missing slot = %v, want nil", err)
	}
}

func TestRejectsEscapingSlotNames(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"", "..", "a/b", `a\b`, "../escape"} {
		if err := store.Save(ctx, name, []byte("x")); err == nil {
			t.Errorf("Save(%q) succeeded, want error", name)
		}
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("base dir has %d entries after rejected saves, want 0", len(entries))
	}
}

func TestNoTempFileLeftBehind(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save(context.Background(), "slot", []byte("data")); err != nil {
		t.Fatal(err)
	}
	matches, err := filepath.Glob(filepath.Join(base, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
