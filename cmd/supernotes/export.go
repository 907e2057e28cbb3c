package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/pkg/adapters/pdf"
	"github.com/aretw0/supernotes/pkg/codec"
	"github.com/aretw0/supernotes/pkg/core"
	"github.com/aretw0/supernotes/pkg/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		formatName string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all notes as json, md, pdf or txt",
		Long: `Export writes every note, in collection order, to a file named
notes-export.<format> (or --out; - means stdout).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatName == "" {
				formatName = a.cfg.Export.Format
			}
			f, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			exporter := export.NewExporter()
			exporter.Register(export.FormatPDF, pdf.New())
			exporter.Register(export.FormatText, &export.TextRenderer{Width: a.cfg.Display.Width})

			var buf bytes.Buffer
			if err := exporter.Export(&buf, f, nb.Store.Notes()); err != nil {
				return err
			}

			if out == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}
			if out == "" {
				out = filepath.Join(a.cfg.Export.Dir, export.Filename(f))
			}
			if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			a.logger.Debug("export written", "path", out, "bytes", buf.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", nb.Store.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Export format: json, md, pdf, txt (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var inputCodec string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace all notes with a JSON or YAML export",
		Long: `Import replaces the whole collection with the notes in file, keeping their
ids and timestamps. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}

			if inputCodec == "" {
				inputCodec = filepath.Ext(args[0])
				if args[0] == "-" {
					inputCodec = "json"
				}
			}
			c, err := codec.ByName(inputCodec)
			if err != nil {
				return err
			}
			notes, err := c.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("%w: %v", core.ErrInvalidNote, err)
			}

			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			if err := nb.Store.Replace(cmd.Context(), notes); err != nil {
				return fmt.Errorf("failed to import notes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d notes.\n", len(notes))
			return nil
		},
	}

	// Distinct from the persistent --codec, which selects the notebook encoding.
	cmd.Flags().StringVar(&inputCodec, "input-codec", "", "Input encoding: json, yaml (default from file extension)")
	return cmd
}
