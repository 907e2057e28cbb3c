package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/pkg/core"
	"github.com/aretw0/supernotes/pkg/query"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		title   string
		content string
		tags    string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Long:  `Add appends a new note. Pass --content - to read the content from stdin.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if content == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read content: %w", err)
				}
				content = string(data)
			}

			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			n, err := nb.Store.Add(cmd.Context(), core.Draft{
				Title:   title,
				Content: content,
				Color:   color,
				Tags:    query.ParseTags(tags),
			})
			if err != nil {
				return warnValidation(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note #%d added.\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Note content (markdown), - for stdin")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&color, "color", core.DefaultColor, "Note colour as #rrggbb")
	return cmd
}

// warnValidation turns a rejected draft into a user-facing warning.
func warnValidation(cmd *cobra.Command, err error) error {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("please provide %s", strings.Join(verr.Fields, " and "))
	}
	return err
}
