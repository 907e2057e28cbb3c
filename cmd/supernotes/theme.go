package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the display mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer nb.Close()

			ctx := cmd.Context()
			if len(args) == 1 {
				switch args[0] {
				case "dark":
					err = nb.Store.SetDarkMode(ctx, true)
				case "light":
					err = nb.Store.SetDarkMode(ctx, false)
				case "toggle":
					_, err = nb.Store.ToggleDarkMode(ctx)
				default:
					return fmt.Errorf("unknown theme %q", args[0])
				}
				if err != nil {
					return fmt.Errorf("failed to change theme: %w", err)
				}
			}

			mode := "light"
			if nb.Store.DarkMode() {
				mode = "dark"
			}
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	}
}
