// Package fs implements core.Storage on the local filesystem: one file per
// key inside a data directory, written atomically.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/supernotes/pkg/core"
)

// ErrInvalidKey is returned for keys that cannot be mapped to a file name.
var ErrInvalidKey = errors.New("invalid storage key")

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	Ext          string // File extension for every key, e.g. ".json". Defaults to ".json".
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher errors. Optional.
	Debounce     time.Duration
}

// Storage implements core.Storage and core.Watchable using the filesystem.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.Ext == "" {
		config.Ext = ".json"
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the data directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Get reads the file backing key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.filename(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the file backing key via temp file + rename.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.recordWrite()
	s.config.Logger.Debug("key written", "key", key, "bytes", len(value))
	return nil
}

// Delete removes the file backing key. A missing file is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.recordWrite()
	return nil
}

func (s *Storage) filename(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Path, key+s.config.Ext), nil
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
