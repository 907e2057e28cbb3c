package supernotes

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/supernotes/internal/platform"
	"github.com/aretw0/supernotes/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Draft is a public alias for the editable fields of a note.
type Draft = core.Draft

// Store is a public alias for the note store.
type Store = core.Store

// Notebook is an opened store together with its storage.
type Notebook = platform.Notebook

// --- Configuration ---

// Option defines a functional option for opening a notebook.
type Option = platform.Option

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage injects a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithCodec selects the snapshot encoding ("json", "yaml").
func WithCodec(name string) Option {
	return platform.WithCodec(name)
}

// WithClock overrides the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist requires the data location to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler registers a callback for filesystem watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open initializes the storage at uri and returns a loaded notebook.
func Open(ctx context.Context, uri string, opts ...Option) (*Notebook, error) {
	return platform.Open(ctx, uri, opts...)
}

// Init initializes a storage explicitly, without loading a store.
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	return platform.Init(ctx, uri, opts...)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data location based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards from startDir for a project-local .supernotes directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
