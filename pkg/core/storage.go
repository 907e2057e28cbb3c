package core

import "context"

// Storage keys used by the Store.
const (
	NotesKey    = "notes"
	DarkModeKey = "darkMode"
)

// Storage defines the contract for the key-value space the store persists to.
// It plays the role of a browser's local storage: a handful of keys, each
// holding one opaque value written as a whole.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value under key in a single write.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error
}

// Watchable defines storages that can report external changes to a key.
type Watchable interface {
	// Watch emits an EventReload each time the value under key changes outside
	// of this process' control. The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Codec encodes the note snapshot persisted under NotesKey.
type Codec interface {
	Marshal(notes []Note) ([]byte, error)
	Unmarshal(data []byte) ([]Note, error)
}
