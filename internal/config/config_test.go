package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/supernotes/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Missing File Yields Defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "fs", cfg.Storage.Adapter)
		assert.Equal(t, "json", cfg.Storage.Codec)
		assert.Empty(t, cfg.Storage.DataDir)
		assert.Equal(t, "none", cfg.Display.Sort)
		assert.Equal(t, 80, cfg.Display.Width)
		assert.Equal(t, "en", cfg.Display.Language)
		assert.Equal(t, "json", cfg.Export.Format)
	})

	t.Run("File Overrides Defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "storage:\n  adapter: sqlite\n  data_dir: /srv/notes\ndisplay:\n  sort: title\n  width: 100\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Storage.Adapter)
		assert.Equal(t, "/srv/notes", cfg.Storage.DataDir)
		assert.Equal(t, "title", cfg.Display.Sort)
		assert.Equal(t, 100, cfg.Display.Width)
		assert.Equal(t, "json", cfg.Storage.Codec)
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage:\n  codec: json\n"), 0644))
		t.Setenv("SUPERNOTES_STORAGE_CODEC", "yaml")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.Storage.Codec)
	})

	t.Run("Malformed File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: [\n"), 0644))

		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	cfg.Storage.Codec = "yaml"
	cfg.Display.Filter = "pinned"
	require.NoError(t, config.Save(path, cfg))

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestDefaultPaths(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(config.DefaultPath()))
	assert.Equal(t, "supernotes", filepath.Base(config.DefaultDataDir()))
}
