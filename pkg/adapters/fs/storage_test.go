package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/supernotes/pkg/adapters/fs"
	"github.com/aretw0/supernotes/pkg/core"
)

func newStorage(t *testing.T, cfg fs.Config) *fs.Storage {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = t.TempDir()
	}
	s := fs.NewStorage(cfg)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Missing Key", func(t *testing.T) {
		s := newStorage(t, fs.Config{})
		v, ok, err := s.Get(ctx, core.NotesKey)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		dir := t.TempDir()
		s := newStorage(t, fs.Config{Path: dir})

		require.NoError(t, s.Set(ctx, core.NotesKey, []byte(`[{"id":1}]`)))

		v, ok, err := s.Get(ctx, core.NotesKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, string(v))
		assert.FileExists(t, filepath.Join(dir, "notes.json"))
	})

	t.Run("Custom Extension", func(t *testing.T) {
		dir := t.TempDir()
		s := newStorage(t, fs.Config{Path: dir, Ext: "yaml"})
		require.NoError(t, s.Set(ctx, core.NotesKey, []byte("[]\n")))
		assert.FileExists(t, filepath.Join(dir, "notes.yaml"))
	})

	t.Run("Delete Is Idempotent", func(t *testing.T) {
		s := newStorage(t, fs.Config{})
		require.NoError(t, s.Set(ctx, core.DarkModeKey, []byte("true")))
		require.NoError(t, s.Delete(ctx, core.DarkModeKey))
		require.NoError(t, s.Delete(ctx, core.DarkModeKey))

		_, ok, err := s.Get(ctx, core.DarkModeKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Rejects Path Keys", func(t *testing.T) {
		s := newStorage(t, fs.Config{})
		for _, key := range []string{"", "..", "a/b", `a\b`} {
			err := s.Set(ctx, key, []byte("x"))
			assert.ErrorIs(t, err, fs.ErrInvalidKey, "key %q", key)
		}
	})

	t.Run("Read Only", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("[]"), 0644))
		s := newStorage(t, fs.Config{Path: dir, ReadOnly: true})

		v, ok, err := s.Get(ctx, core.NotesKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", string(v))

		assert.ErrorIs(t, s.Set(ctx, core.NotesKey, []byte("x")), core.ErrReadOnly)
		assert.ErrorIs(t, s.Delete(ctx, core.NotesKey), core.ErrReadOnly)
	})

	t.Run("Must Exist", func(t *testing.T) {
		s := fs.NewStorage(fs.Config{Path: filepath.Join(t.TempDir(), "nope"), MustExist: true})
		assert.Error(t, s.Initialize(ctx))
	})

	t.Run("Initialize Creates Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		s := fs.NewStorage(fs.Config{Path: dir})
		require.NoError(t, s.Initialize(ctx))
		assert.DirExists(t, dir)
	})

	t.Run("State", func(t *testing.T) {
		s := newStorage(t, fs.Config{})
		state := s.State().(fs.StorageState)
		assert.Nil(t, state.LastWrite)
		assert.Equal(t, ".json", state.Ext)

		require.NoError(t, s.Set(ctx, core.NotesKey, []byte("[]")))
		state = s.State().(fs.StorageState)
		assert.NotNil(t, state.LastWrite)
		assert.Equal(t, "fs", s.ComponentType())
	})
}

func TestStorage_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	s := newStorage(t, fs.Config{Path: dir, Debounce: 10 * time.Millisecond})

	events, err := s.Watch(ctx, core.NotesKey)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return s.State().(fs.StorageState).WatcherActive
	}, time.Second, 5*time.Millisecond)

	// Another process writes the snapshot.
	other := fs.NewStorage(fs.Config{Path: dir})
	require.NoError(t, other.Set(ctx, core.NotesKey, []byte("[]")))

	select {
	case e := <-events:
		assert.Equal(t, core.EventReload, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}

	// Unrelated keys are ignored.
	require.NoError(t, other.Set(ctx, core.DarkModeKey, []byte("true")))
	select {
	case e := <-events:
		t.Fatalf("unexpected event %s", e.String())
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, time.Second, 5*time.Millisecond)
}

func TestStore_OverFilesystem(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := core.NewStore(newStorage(t, fs.Config{Path: dir}))
	require.NoError(t, store.Load(ctx))
	_, err := store.Add(ctx, core.Draft{Title: "Groceries", Content: "milk", Tags: []string{"home"}})
	require.NoError(t, err)
	require.NoError(t, store.SetDarkMode(ctx, true))

	reopened := core.NewStore(newStorage(t, fs.Config{Path: dir}))
	require.NoError(t, reopened.Load(ctx))
	assert.Equal(t, store.Notes(), reopened.Notes())
	assert.Equal(t, 2, reopened.NextID())
	assert.True(t, reopened.DarkMode())
}
