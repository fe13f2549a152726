package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestFileWatcher_TriggersReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rate_limit:\n  limit: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	var reloads atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("rate_limit:\n  limit: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Reload was never triggered")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestFileWatcher_DebouncesRapidWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(path, 150*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// Burst of writes inside one debounce interval.
	for i := 0; i < 5; i++ {
		os.WriteFile(path, []byte("a: 2\n"), 0o644)
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("Expected 1 debounced reload, got %d", got)
	}

	cancel()
	<-done
}

func TestFileWatcher_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("a: 1\n"), 0o644)

	fw, err := NewFileWatcher(path, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Stop before Watch is a no-op.
	if err := fw.Stop(); err != nil {
		t.Errorf("Stop on idle watcher failed: %v", err)
	}
}
