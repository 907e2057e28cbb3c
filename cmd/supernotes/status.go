package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the store and storage state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			status := map[string]any{
				nb.Store.ComponentType(): nb.Store.State(),
			}
			if c, ok := nb.Storage.(introspection.Component); ok {
				if s, ok := nb.Storage.(introspection.Introspectable); ok {
					status[c.ComponentType()] = s.State()
				}
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(status)
		},
	}
}
