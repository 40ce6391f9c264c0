package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newSourcesCommand(opts *rootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show the freshness of every configured source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load(opts)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if refresh {
				a.refreshAll(cmd.Context(), false)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tKIND\tLIVE\tORIGIN\tLAST UPDATE\tERROR")
			for _, src := range a.scheduler.Sources() {
				state, err := a.dashboard.Freshness(src.ID)
				if err != nil {
					return err
				}

				origin := "-"
				if !src.Kind.FeedsContent() {
					if entry, err := a.dashboard.Snapshot(src.ID); err == nil {
						origin = string(entry.Origin)
					}
				}

				updated := "never"
				if !state.LastUpdatedAt.IsZero() {
					updated = state.LastUpdatedAt.Format(time.DateTime)
				}

				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\t%s\n",
					src.ID, src.Kind, state.Live, origin, updated, state.LastError)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", true, "fetch every source once before printing")

	return cmd
}
