package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/supernotes/pkg/core"
)

// Watch implements core.Watchable. It watches the data directory (atomic
// writes replace the file, so watching the file itself would lose track of
// it) and emits one EventReload per burst of changes to the key's file.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	path, err := s.filename(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	events := make(chan core.Event, 1)
	target := filepath.Base(path)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(false)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, target, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

// watchLoop coalesces bursts of filesystem events into a single reload
// notification after the debounce window.
func (s *Storage) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, out chan<- core.Event) error {
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event, target) {
				continue
			}
			s.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			pending = time.After(s.config.Debounce)

		case <-pending:
			pending = nil
			select {
			case out <- core.Event{Type: core.EventReload, Timestamp: time.Now().Unix()}:
			default:
				// A reload is already queued; it will pick up this change too.
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.handleWatchError(err)
		}
	}
}

func (s *Storage) relevant(event fsnotify.Event, target string) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) || name != target {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (s *Storage) handleWatchError(err error) {
	s.config.Logger.Error("fsnotify error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
