package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/internal/config"
	"github.com/aretw0/supernotes/internal/platform"
)

// app carries the state shared by every subcommand.
type app struct {
	verbose    bool
	configPath string
	dataDir    string
	adapter    string
	codec      string
	readOnly   bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "supernotes",
		Short: "Colour-coded, taggable, pinnable notes from the terminal",
		Long: `Supernotes keeps an ordered collection of notes with titles, markdown
content, colours, tags and a pinned flag. Notes are persisted as a single
snapshot that other processes can watch.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(a.logger)

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVarP(&a.dataDir, "data", "d", "", "Notebook location (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.adapter, "adapter", "", "Storage adapter: fs, sqlite, memory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.codec, "codec", "", "Snapshot encoding: json, yaml (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&a.readOnly, "read-only", false, "Open the notebook read-only")

	rootCmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newPinCmd(a),
		newEditCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newThemeCmd(a),
		newStatusCmd(a),
		newWatchCmd(a),
		newToolbarCmd(),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// resolveDataDir picks the notebook location: flag, then config, then a
// project-local .supernotes directory, then the per-user default.
func (a *app) resolveDataDir() string {
	if a.dataDir != "" {
		return a.dataDir
	}
	if a.cfg.Storage.DataDir != "" {
		return a.cfg.Storage.DataDir
	}
	if wd, err := os.Getwd(); err == nil {
		if root, err := platform.FindRoot(wd); err == nil {
			return root
		}
	}
	return config.DefaultDataDir()
}

func (a *app) open(ctx context.Context) (*platform.Notebook, error) {
	adapter := a.cfg.Storage.Adapter
	if a.adapter != "" {
		adapter = a.adapter
	}
	codec := a.cfg.Storage.Codec
	if a.codec != "" {
		codec = a.codec
	}

	dir := a.resolveDataDir()
	a.logger.Debug("opening notebook", "path", dir, "adapter", adapter, "codec", codec)

	nb, err := platform.Open(ctx, dir,
		platform.WithAdapter(adapter),
		platform.WithCodec(codec),
		platform.WithReadOnly(a.readOnly),
		platform.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open notebook: %w", err)
	}
	return nb, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}
