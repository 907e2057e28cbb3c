package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pin [id]",
		Short: "Pin or unpin a note",
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

			ok, err := nb.Store.TogglePin(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to toggle pin: %w", err)
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Note #%d not found.\n", id)
				return nil
			}

			n, _ := nb.Store.Get(id)
			state := "unpinned"
			if n.Pinned {
				state = "pinned"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note #%d %s.\n", id, state)
			return nil
		},
	}
}
