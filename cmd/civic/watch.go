package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicconnect/reporting-system/internal/core/ports"
)

// newWatchCmd follows store changes until interrupted: push notifications
// from the data-directory watch plus the configured poll interval.
func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow report changes as they happen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			actor, err := a.actor()
			if err != nil {
				return err
			}
			if err := a.watcher.Start(ctx); err != nil {
				return err
			}
			changes := a.watcher.Subscribe()

			render := func() error {
				reports, err := a.reports.List(ctx, actor, ports.ListReportsInput{})
				if err != nil {
					return err
				}
				fmt.Printf("-- %s (%d reports) --\n", time.Now().Format("15:04:05"), len(reports))
				printReports(reports)
				return nil
			}
			if err := render(); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case c := <-changes:
					// Interval ticks carry no key; re-render on those and
					// on report changes, skip user/session writes.
					if c.Key != "" && c.Key != "reports" {
						continue
					}
					if err := render(); err != nil {
						return err
					}
				}
			}
		},
	}
}
