// Package watch re-runs a callback whenever a splits file is saved.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups the burst of events a single save produces.
const DefaultDebounce = 300 * time.Millisecond

// Config controls a watch loop.
type Config struct {
	Path     string
	Debounce time.Duration
	Logger   zerolog.Logger
}

// Run watches cfg.Path and calls onChange once per settled burst of writes.
// The parent directory is watched because LiveSplit replaces the file on save.
// Run blocks until ctx is cancelled and then returns nil.
func Run(ctx context.Context, cfg Config, onChange func(context.Context)) error {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	cfg.Logger.Debug().Str("path", path).Dur("debounce", debounce).Msg("watching")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, path) {
				continue
			}
			cfg.Logger.Debug().Str("op", event.Op.String()).Msg("file event")
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			onChange(ctx)
		}
	}
}

func relevant(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
