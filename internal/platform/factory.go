// Package platform is the composition root: it turns a data location plus
// functional options into a loaded *core.Store over the chosen adapter.
package platform

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/supernotes/pkg/adapters/fs"
	"github.com/aretw0/supernotes/pkg/adapters/memory"
	"github.com/aretw0/supernotes/pkg/adapters/sqlite"
	"github.com/aretw0/supernotes/pkg/codec"
	"github.com/aretw0/supernotes/pkg/core"
)

// Notebook is an opened, loaded store together with the storage backing it.
type Notebook struct {
	Store   *core.Store
	Storage core.Storage
}

// Close releases the storage if it holds resources (e.g. a database handle).
func (n *Notebook) Close() error {
	if c, ok := n.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open initializes the storage at uri, builds a Store over it and loads the
// persisted snapshot. The uri is adapter-specific: a directory for "fs", a
// database file for "sqlite", ignored for "memory".
//
//	nb, err := platform.Open(ctx, "~/.local/share/supernotes", platform.WithCodec("yaml"))
func Open(ctx context.Context, uri string, opts ...Option) (*Notebook, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c, err := codec.ByName(o.codec)
	if err != nil {
		return nil, err
	}

	storage, err := initStorage(ctx, uri, o, c)
	if err != nil {
		return nil, err
	}

	store := core.NewStore(storage,
		core.WithCodec(c),
		core.WithStoreLogger(o.logger),
		core.WithClock(o.clock),
	)
	nb := &Notebook{Store: store, Storage: storage}

	if err := store.Load(ctx); err != nil {
		_ = nb.Close()
		return nil, err
	}
	return nb, nil
}

// Init builds and initializes the storage selected by opts without loading a
// store.
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	c, err := codec.ByName(o.codec)
	if err != nil {
		return nil, err
	}
	return initStorage(ctx, uri, o, c)
}

func initStorage(ctx context.Context, uri string, o *options, c core.Codec) (core.Storage, error) {
	if o.storage != nil {
		if err := o.storage.Initialize(ctx); err != nil {
			return nil, err
		}
		return o.storage, nil
	}

	var storage core.Storage
	switch o.adapter {
	case AdapterFS:
		storage = fs.NewStorage(fs.Config{
			Path:         resolve(uri, o),
			Ext:          codec.Extension(c),
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
			Debounce:     o.debounce,
		})
	case AdapterSQLite:
		path := resolve(uri, o)
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "supernotes.db")
		}
		if err := ensureDir(ctx, filepath.Dir(path), o); err != nil {
			return nil, err
		}
		storage = sqlite.NewStorage(path, sqlite.WithReadOnly(o.readOnly))
	case AdapterMemory:
		storage = memory.New()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownAdapter, o.adapter)
	}

	if err := storage.Initialize(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

// resolve applies the dev sandbox rules to a user-supplied location.
func resolve(uri string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	path := ResolveDataPath(uri, useTemp)

	if o.logger != nil && useTemp && path != filepath.Clean(uri) {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", uri, "resolved_path", path)
	}
	if o.logger != nil && IsDevRun() && bypass && !o.readOnly {
		o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", path)
	}
	return path
}

// ensureDir prepares the directory holding a database file.
func ensureDir(ctx context.Context, dir string, o *options) error {
	return fs.NewStorage(fs.Config{
		Path:      dir,
		MustExist: o.mustExist || o.readOnly,
		Logger:    o.logger,
	}).Initialize(ctx)
}
