package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/supernotes/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// options holds the internal configuration for a notebook.
type options struct {
	storage      core.Storage
	logger       *slog.Logger
	adapter      string
	codec        string
	clock        func() time.Time
	errorHandler func(error)
	forceTemp    bool
	mustExist    bool
	readOnly     bool
	devSafety    bool
	debounce     time.Duration
}

// Option defines a functional option for opening a notebook.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		codec:     "json",
		devSafety: true,
	}
}

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a custom storage (e.g. a mock). When set, the adapter
// name and path resolution are skipped.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithCodec selects the snapshot encoding by name ("json", "yaml").
// Defaults to "json".
func WithCodec(name string) Option {
	return func(o *options) {
		o.codec = name
	}
}

// WithClock overrides the time source used for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithMustExist requires the data location to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode. Mutations fail with core.ErrReadOnly
// and the dev sandbox is bypassed, since nothing can be damaged.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the data location is re-rooted under the
// system temp directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithWatcherErrorHandler registers a callback for errors raised by the
// filesystem watcher, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithWatchDebounce sets how long the filesystem watcher waits for a burst of
// changes to settle before reloading.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}
