package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note",
		Long:  `Delete removes a note. Deleting an unknown id is not an error.`,
		Args:  cobra.ExactArgs(1),
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

			if err := nb.Store.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note #%d deleted.\n", id)
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete all %d notes? [y/N] ", nb.Store.Len())
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := nb.Store.DeleteAll(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear notes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All notes deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
