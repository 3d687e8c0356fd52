package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	calls := 0

	w, err := New(func(events []Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, WithDebounceDuration(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(file); err != nil {
		t.Fatal(err)
	}

	// Burst of writes should coalesce into a single handler call.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(file, []byte("a: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := calls
		mu.Unlock()
		if n >= 1 {
			if n > 1 {
				t.Errorf("expected coalesced single call, got %d", n)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never invoked")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcherAddAfterClose(t *testing.T) {
	w, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(t.TempDir()); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	// Double close is a no-op.
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
