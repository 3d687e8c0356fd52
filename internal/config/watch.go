package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/lazyverdi/lazyverdi/internal/watcher"
)

// Watch observes the config file and calls onChange with the reloaded
// configuration whenever it is modified. It returns a stop function.
func Watch(path string, onChange func(*Config)) (func(), error) {
	if path == "" {
		path = DefaultPath()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	w, err := watcher.New(func(events []watcher.Event) {
		relevant := false
		for _, e := range events {
			if filepath.Clean(e.Path) == filepath.Clean(abs) {
				relevant = true
				break
			}
		}
		if !relevant {
			return
		}
		cfg, err := Load(abs)
		if err != nil {
			log.Printf("reloading config: %v", err)
			return
		}
		if onChange != nil {
			onChange(cfg)
		}
	}, watcher.WithDebounceDuration(500*time.Millisecond))
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	if err := w.Add(abs); err != nil {
		if err := w.Add(filepath.Dir(abs)); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching config: %w", err)
		}
	}

	return func() { _ = w.Close() }, nil
}
