// Package watcher provides debounced file watching built on fsnotify.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when operations are called on a closed Watcher.
var ErrClosed = errors.New("watcher: watcher is closed")

// DefaultDebounceDuration coalesces bursts of events from a single save.
const DefaultDebounceDuration = 500 * time.Millisecond

// Event is a change notification for a watched path.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Handler receives coalesced events after the debounce window closes.
type Handler func(events []Event)

// Watcher watches files for changes and invokes a handler with debouncing.
type Watcher struct {
	fs       *fsnotify.Watcher
	handler  Handler
	debounce time.Duration

	mu      sync.Mutex
	pending []Event
	timer   *time.Timer
	watched map[string]bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce window.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a Watcher and starts its event loop.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fs,
		handler:  handler,
		debounce: DefaultDebounceDuration,
		watched:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Add watches a file or directory. Watching a file registers its parent
// directory too, so editor rename-and-replace saves are still observed.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if w.watched[abs] {
		return nil
	}
	if err := w.fs.Add(abs); err != nil {
		// Fall back to watching the parent directory; the file may not
		// exist yet.
		if dirErr := w.fs.Add(filepath.Dir(abs)); dirErr != nil {
			return err
		}
	}
	w.watched[abs] = true
	return nil
}

// Close stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.enqueue(Event{Path: ev.Name, Op: ev.Op})
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) enqueue(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = append(w.pending, ev)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	events := w.pending
	w.pending = nil
	closed := w.closed
	w.mu.Unlock()
	if closed || len(events) == 0 || w.handler == nil {
		return
	}
	w.handler(events)
}
