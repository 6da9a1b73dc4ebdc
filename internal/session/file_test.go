package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	state, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load before save: %v", err)
	}
	if state.CurrentFile != "" {
		t.Fatalf("fresh store returned %+v", state)
	}

	saved := State{CurrentFile: "/tmp/demo.svg", UpdatedAt: time.Now().UTC().Truncate(time.Second)}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save: %v", err)
	}
	state, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.CurrentFile != saved.CurrentFile {
		t.Fatalf("CurrentFile = %q, want %q", state.CurrentFile, saved.CurrentFile)
	}
	if !state.UpdatedAt.Equal(saved.UpdatedAt) {
		t.Fatalf("UpdatedAt = %s, want %s", state.UpdatedAt, saved.UpdatedAt)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	state, _ = store.Load(ctx)
	if state.CurrentFile != "" {
		t.Fatalf("state survived Clear: %+v", state)
	}
	// Clearing twice must not fail.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save(context.Background(), State{CurrentFile: "a.xml"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, stateFileName)); err != nil {
		t.Fatalf("state file missing: %v", err)
	}
}

func TestFileStoreIgnoresCorruptState(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt state: %v", err)
	}
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	state, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.CurrentFile != "" {
		t.Fatalf("corrupt state produced %+v", state)
	}
}
