package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/supernotes/pkg/core"
	"github.com/aretw0/supernotes/pkg/query"
)

func newWatchCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the list whenever the notebook changes on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			nb, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer nb.Close()

			events, unsubscribe := nb.Store.Subscribe(0)
			defer unsubscribe()

			if err := nb.Store.Watch(ctx); err != nil {
				if errors.Is(err, core.ErrNotWatchable) {
					return fmt.Errorf("%T cannot be watched: %w", nb.Storage, err)
				}
				return err
			}

			render := func() error {
				notes := query.SelectAndOrder(nb.Store.Notes(), query.Query{})
				return printNotes(cmd, notes, asJSON, nb.Store.DarkMode())
			}
			if err := render(); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case e, ok := <-events:
					if !ok {
						return nil
					}
					a.logger.Debug("store event", "event", e.String())
					fmt.Fprintf(cmd.OutOrStdout(), "-- %s %s\n", time.Unix(e.Timestamp, 0).Format(time.TimeOnly), e.String())
					if err := render(); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
