// Package config loads CLI settings from ~/.config/supernotes/config.yaml
// with SUPERNOTES_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. SUPERNOTES_STORAGE_ADAPTER.
const EnvPrefix = "SUPERNOTES"

// StorageConfig selects where and how notes are persisted.
type StorageConfig struct {
	// DataDir is the notebook location. Empty means a project-local
	// .supernotes directory if one exists, else DefaultDataDir.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Adapter is one of "fs", "sqlite", "memory".
	Adapter string `mapstructure:"adapter" yaml:"adapter"`

	// Codec is the snapshot encoding, "json" or "yaml".
	Codec string `mapstructure:"codec" yaml:"codec"`
}

// DisplayConfig holds listing and rendering preferences.
type DisplayConfig struct {
	Sort     string `mapstructure:"sort" yaml:"sort"`
	Filter   string `mapstructure:"filter" yaml:"filter"`
	Width    int    `mapstructure:"width" yaml:"width"`
	Language string `mapstructure:"language" yaml:"language"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Dir    string `mapstructure:"dir" yaml:"dir"`
}

// Config is the top-level CLI configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
}

// DefaultPath returns ~/.config/supernotes/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "supernotes", "config.yaml")
}

// DefaultDataDir returns ~/.local/share/supernotes.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".supernotes")
	}
	return filepath.Join(home, ".local", "share", "supernotes")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.data_dir", "")
	v.SetDefault("storage.adapter", "fs")
	v.SetDefault("storage.codec", "json")
	v.SetDefault("display.sort", "none")
	v.SetDefault("display.filter", "none")
	v.SetDefault("display.width", 80)
	v.SetDefault("display.language", "en")
	v.SetDefault("export.format", "json")
	v.SetDefault("export.dir", ".")
}

// Load reads the configuration at path. A missing file yields the defaults;
// environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Display.Width <= 0 {
		cfg.Display.Width = 80
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"data_dir": cfg.Storage.DataDir,
		"adapter":  cfg.Storage.Adapter,
		"codec":    cfg.Storage.Codec,
	})
	v.Set("display", map[string]any{
		"sort":     cfg.Display.Sort,
		"filter":   cfg.Display.Filter,
		"width":    cfg.Display.Width,
		"language": cfg.Display.Language,
	})
	v.Set("export", map[string]any{
		"format": cfg.Export.Format,
		"dir":    cfg.Export.Dir,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
