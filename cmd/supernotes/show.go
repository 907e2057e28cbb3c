package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/pkg/core"
	"github.com/aretw0/supernotes/pkg/format"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		asHTML bool
		raw    bool
		width  int
	)

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a note",
		Long: `Show renders a note's content for the terminal. --html prints the content
as the safe HTML fragment a web view would display.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			n, ok := nb.Store.Get(id)
			if !ok {
				return fmt.Errorf("note #%d not found", id)
			}

			out := cmd.OutOrStdout()
			switch {
			case asHTML:
				fmt.Fprintln(out, format.Content(n.Content))
				return nil
			case raw:
				fmt.Fprintln(out, n.Content)
				return nil
			}

			if width <= 0 {
				width = a.cfg.Display.Width
			}
			rendered, err := renderMarkdown(n, nb.Store.DarkMode(), width)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Print the content as an HTML fragment")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the content unrendered")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Word-wrap width (default from config)")
	return cmd
}

func renderMarkdown(n core.Note, dark bool, width int) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", n.Title)
	if len(n.Tags) > 0 {
		fmt.Fprintf(&b, "*Tags: %s*\n\n", strings.Join(n.Tags, ", "))
	}
	b.WriteString(n.Content)

	return r.Render(b.String())
}
