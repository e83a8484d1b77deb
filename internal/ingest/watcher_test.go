package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "existing.pdf", "already here")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
		Logger:      discard(),
	})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	select {
	case p := <-events:
		if filepath.Base(p) != "existing.pdf" {
			t.Errorf("event = %s, want existing.pdf", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("initial scan emitted nothing")
	}
}

func TestWatcherSurvivesRapidWriteBursts(t *testing.T) {
	// many files landing inside the debounce window keep resetting the
	// timer while new events arrive; every file must still come through
	const n = 200
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Millisecond,
		Logger:   discard(),
	})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("inv-%03d.pdf", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	seen := map[string]struct{}{}
	deadline := time.After(10 * time.Second)
	for len(seen) < n {
		select {
		case p := <-events:
			seen[filepath.Base(p)] = struct{}{}
		case <-deadline:
			t.Fatalf("saw %d of %d files", len(seen), n)
		}
	}
}

func TestWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{Logger: discard()})
	if err == nil {
		t.Fatal("expected error for empty roots")
	}
}
