// Package memory provides a map-backed core.Storage for tests and ephemeral
// sessions.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/supernotes/pkg/core"
)

// Storage implements core.Storage and core.Watchable in memory.
// Watchers are notified of every Set or Delete on their key, whichever Store
// issued it, which mirrors two browser tabs sharing one local storage.
type Storage struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers map[string][]chan core.Event
	readOnly bool
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{
		values:   make(map[string][]byte),
		watchers: make(map[string][]chan core.Event),
	}
}

// NewReadOnly wraps seed values in a storage that rejects writes.
func NewReadOnly(seed map[string][]byte) *Storage {
	s := New()
	for k, v := range seed {
		s.values[k] = slices.Clone(v)
	}
	s.readOnly = true
	return s
}

func (s *Storage) Initialize(ctx context.Context) error { return nil }

func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return slices.Clone(v), ok, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.mu.Lock()
	s.values[key] = slices.Clone(value)
	s.mu.Unlock()
	s.notify(key)
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	s.notify(key)
	return nil
}

// Watch implements core.Watchable.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	ch := make(chan core.Event, 8)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.watchers[key] = slices.DeleteFunc(s.watchers[key], func(c chan core.Event) bool { return c == ch })
		close(ch)
	}()
	return ch, nil
}

func (s *Storage) notify(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := core.Event{Type: core.EventReload, Timestamp: time.Now().Unix()}
	for _, ch := range s.watchers[key] {
		select {
		case ch <- e:
		default:
		}
	}
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Keys     []string `json:"keys"`
	ReadOnly bool     `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return StorageState{Keys: keys, ReadOnly: s.readOnly}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
