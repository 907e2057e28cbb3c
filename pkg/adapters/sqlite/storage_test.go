package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/supernotes/pkg/adapters/sqlite"
	"github.com/aretw0/supernotes/pkg/core"
)

func openStorage(t *testing.T, path string, opts ...sqlite.Option) *sqlite.Storage {
	t.Helper()
	s := sqlite.NewStorage(path, opts...)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Missing Key", func(t *testing.T) {
		s := openStorage(t, filepath.Join(t.TempDir(), "notes.db"))
		v, ok, err := s.Get(ctx, core.NotesKey)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Set Replaces Value", func(t *testing.T) {
		s := openStorage(t, filepath.Join(t.TempDir(), "notes.db"))
		require.NoError(t, s.Set(ctx, core.NotesKey, []byte("[]")))
		require.NoError(t, s.Set(ctx, core.NotesKey, []byte(`[{"id":1}]`)))

		v, ok, err := s.Get(ctx, core.NotesKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1}]`, string(v))

		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{core.NotesKey}, keys)
	})

	t.Run("Delete", func(t *testing.T) {
		s := openStorage(t, filepath.Join(t.TempDir(), "notes.db"))
		require.NoError(t, s.Set(ctx, core.DarkModeKey, []byte("true")))
		require.NoError(t, s.Delete(ctx, core.DarkModeKey))
		require.NoError(t, s.Delete(ctx, core.DarkModeKey))

		_, ok, err := s.Get(ctx, core.DarkModeKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Migrations Are Idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.db")
		first := sqlite.NewStorage(path)
		require.NoError(t, first.Initialize(ctx))
		require.NoError(t, first.Set(ctx, core.NotesKey, []byte("[]")))
		require.NoError(t, first.Close())

		second := openStorage(t, path)
		state := second.State().(sqlite.StorageState)
		assert.Equal(t, 1, state.SchemaVersion)
		assert.True(t, state.Open)

		_, ok, err := second.Get(ctx, core.NotesKey)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Read Only", func(t *testing.T) {
		s := openStorage(t, filepath.Join(t.TempDir(), "notes.db"), sqlite.WithReadOnly(true))
		assert.ErrorIs(t, s.Set(ctx, core.NotesKey, []byte("[]")), core.ErrReadOnly)
		assert.ErrorIs(t, s.Delete(ctx, core.NotesKey), core.ErrReadOnly)
	})

	t.Run("Uninitialized", func(t *testing.T) {
		s := sqlite.NewStorage(filepath.Join(t.TempDir(), "notes.db"))
		_, _, err := s.Get(ctx, core.NotesKey)
		assert.Error(t, err)
		assert.Equal(t, "sqlite", s.ComponentType())
	})
}

func TestStore_OverSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")

	store := core.NewStore(openStorage(t, path))
	require.NoError(t, store.Load(ctx))
	_, err := store.Add(ctx, core.Draft{Title: "One", Content: "1"})
	require.NoError(t, err)
	second, err := store.Add(ctx, core.Draft{Title: "Two", Content: "2"})
	require.NoError(t, err)
	ok, err := store.TogglePin(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, ok)

	reopened := core.NewStore(openStorage(t, path))
	require.NoError(t, reopened.Load(ctx))
	assert.Equal(t, store.Notes(), reopened.Notes())
	assert.Equal(t, 3, reopened.NextID())
}
