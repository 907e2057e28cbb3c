package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/pkg/core"
	"github.com/aretw0/supernotes/pkg/query"
)

func newEditCmd(a *app) *cobra.Command {
	var (
		title    string
		content  string
		tags     string
		addTags  []string
		dropTags []string
		color    string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a note",
		Long: `Edit takes a note out of the collection and adds it back with the given
changes. The edited note gets a new id and creation time and loses its pin.`,
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

			d := n.Draft()
			flags := cmd.Flags()
			if flags.Changed("title") {
				d.Title = title
			}
			if flags.Changed("content") {
				d.Content = content
			}
			if flags.Changed("color") {
				d.Color = color
			}
			if flags.Changed("tags") {
				d.Tags = query.ParseTags(tags)
			}
			d.Tags = query.MergeTags(d.Tags, addTags...)
			for _, t := range dropTags {
				d.Tags = query.RemoveTag(d.Tags, t)
			}

			// Check before taking the note out so a bad edit loses nothing.
			if err := core.Validate(d); err != nil {
				return warnValidation(cmd, err)
			}

			if _, _, err := nb.Store.Edit(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to edit note: %w", err)
			}
			edited, err := nb.Store.Add(cmd.Context(), d)
			if err != nil {
				return fmt.Errorf("failed to save edited note: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note #%d saved as #%d.\n", id, edited.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	cmd.Flags().StringVar(&tags, "tags", "", "Replace tags (comma-separated)")
	cmd.Flags().StringSliceVar(&addTags, "add-tag", nil, "Add a tag (repeatable)")
	cmd.Flags().StringSliceVar(&dropTags, "remove-tag", nil, "Remove a tag (repeatable)")
	cmd.Flags().StringVar(&color, "color", "", "New colour as #rrggbb")
	return cmd
}
