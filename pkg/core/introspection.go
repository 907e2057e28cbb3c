package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes       int    `json:"notes"`
	Pinned      int    `json:"pinned"`
	NextID      int    `json:"next_id"`
	DarkMode    bool   `json:"dark_mode"`
	Subscribers int    `json:"subscribers"`
	StorageType string `json:"storage_type"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pinned := 0
	for _, n := range s.notes {
		if n.Pinned {
			pinned++
		}
	}

	storageType := "unknown"
	if s.storage != nil {
		storageType = "storage"
		// Try to get component type if storage implements introspection.Component
		if comp, ok := s.storage.(introspection.Component); ok {
			storageType = comp.ComponentType()
		}
	}

	s.subMu.Lock()
	subs := len(s.subscribers)
	s.subMu.Unlock()

	return StoreState{
		Notes:       len(s.notes),
		Pinned:      pinned,
		NextID:      s.nextID,
		DarkMode:    s.darkMode,
		Subscribers: subs,
		StorageType: storageType,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
