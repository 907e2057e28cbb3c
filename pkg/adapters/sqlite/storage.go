// Package sqlite implements core.Storage on a single SQLite database file.
// Every key is a row in the kv table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/aretw0/supernotes/pkg/core"
)

// Storage implements core.Storage using a local SQLite database.
type Storage struct {
	Path     string
	readOnly bool

	mu     sync.Mutex
	db     *sqlx.DB
	schema int
}

// Option configures a Storage.
type Option func(*Storage)

// WithReadOnly rejects Set and Delete with core.ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(s *Storage) {
		s.readOnly = readOnly
	}
}

// NewStorage returns a storage for the database at path. The database is
// opened by Initialize.
func NewStorage(path string, opts ...Option) *Storage {
	s := &Storage{Path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize opens (or creates) the database, enables WAL mode, and runs any
// pending schema migrations. Calling it again is a no-op.
func (s *Storage) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := sqlx.Open("sqlite", s.Path)
	if err != nil {
		return fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("enabling WAL mode: %w", err)
	}

	version, err := runMigrations(ctx, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("running migrations: %w", err)
	}

	s.db = db
	s.schema = version
	return nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// runMigrations applies outstanding migrations in order and returns the
// resulting schema version.
func runMigrations(ctx context.Context, db *sqlx.DB) (int, error) {
	currentVersion := 0

	var tableCount int
	err := db.GetContext(ctx, &tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return 0, fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = db.GetContext(ctx, &currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return 0, fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			return 0, fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		currentVersion = m.version
	}
	return currentVersion, nil
}

// Get returns the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db, err := s.conn()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = db.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting key %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	db, err := s.conn()
	if err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	_, err = db.ExecContext(ctx,
		"INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	db, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in lexical order.
func (s *Storage) Keys(ctx context.Context) ([]string, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var keys []string
	if err := db.SelectContext(ctx, &keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

func (s *Storage) conn() (*sqlx.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("sqlite storage %s is not initialized", s.Path)
	}
	return s.db, nil
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string `json:"path"`
	Open          bool   `json:"open"`
	ReadOnly      bool   `json:"read_only"`
	SchemaVersion int    `json:"schema_version"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StorageState{
		Path:          s.Path,
		Open:          s.db != nil,
		ReadOnly:      s.readOnly,
		SchemaVersion: s.schema,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
