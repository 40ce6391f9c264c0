package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDigestCommand(opts *rootOptions) *cobra.Command {
	var (
		profileID string
		outDir    string
		stdout    bool
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Refresh content sources and produce a newsletter digest for a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load(opts)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Export.Dir = outDir
			}

			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			a.refreshAll(ctx, true)

			d, err := a.dashboard.Search(ctx, profileID)
			if err != nil {
				return err
			}

			if stdout {
				fmt.Fprint(cmd.OutOrStdout(), a.dashboard.ExportText(d))
				return nil
			}

			file, err := a.dashboard.Deliver(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), file.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileID, "profile", "p", "financier", "audience profile id")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "export directory (overrides export.dir)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the digest instead of delivering it")

	return cmd
}
