package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/pkg/format"
)

func newToolbarCmd() *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "toolbar [bold|italic|code|link|image]",
		Short: "Apply an editor toolbar action to text read from stdin",
		Long: `Toolbar wraps the byte range [--start, --end) of stdin with markdown for the
action and prints the result followed by the new selection on stderr.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bold", "italic", "code", "link", "image"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := format.ParseAction(args[0])
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read text: %w", err)
			}

			text, sel := format.Apply(string(data), format.Selection{Start: start, End: end}, action)
			fmt.Fprint(cmd.OutOrStdout(), text)
			fmt.Fprintf(cmd.ErrOrStderr(), "selection %d:%d\n", sel.Start, sel.End)
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "Selection start (byte offset)")
	cmd.Flags().IntVar(&end, "end", 0, "Selection end (byte offset)")
	return cmd
}
