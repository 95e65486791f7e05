package gamecache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"twitch/internal/catalog"
)

func TestStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "twitch_games.json")
	store := NewStore(path, nil)

	kids := true
	games := []catalog.Game{
		{ASIN: "A1", Title: "Alpha", Installed: true, InstallDirectory: "/g/a", Launch: catalog.Launch{Command: "/g/a/a.exe", Args: []string{"-x"}}, Kids: &kids},
		{ASIN: "B2", Title: "Beta", Launch: catalog.Launch{}, Extra: map[string]json.RawMessage{"note": json.RawMessage(`"keep"`)}},
	}
	if err := store.Save(context.Background(), games); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(raw), "[\n  {") {
		t.Fatalf("expected pretty JSON, got %q", raw[:min(len(raw), 20)])
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 games, got %d", len(loaded))
	}
	if loaded[0].Command != "/g/a/a.exe" || loaded[0].Kids == nil || !*loaded[0].Kids {
		t.Fatalf("unexpected first game: %+v", loaded[0])
	}
	if string(loaded[1].Extra["note"]) != `"keep"` {
		t.Fatalf("extra key lost: %v", loaded[1].Extra)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none.json"), nil)
	if _, err := store.Load(); !errors.Is(err, ErrCacheMissing) {
		t.Fatalf("expected ErrCacheMissing, got %v", err)
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`[{"asin":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path, nil).Load(); !errors.Is(err, ErrCacheCorrupt) {
		t.Fatalf("expected ErrCacheCorrupt, got %v", err)
	}
}

func TestStoreSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	store := NewStore(path, nil)
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty cache, got %d", len(loaded))
	}
}

func TestStoreSaveWaitsForLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.json")
	holder := flock.New(path + ".lock")
	if err := holder.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := NewStore(path, nil).Save(ctx, []catalog.Game{{ASIN: "A"}}); err == nil {
		t.Fatal("expected Save to fail while lock is held")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("cache should not be written while locked, stat err = %v", err)
	}
}
