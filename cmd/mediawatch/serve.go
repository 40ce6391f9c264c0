package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Poll every configured source until interrupted",
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

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("starting media watch", "sources", len(cfg.Sources), "digest_mode", cfg.Digest.Mode)
			a.scheduler.StartAll(ctx)

			<-ctx.Done()
			logger.Info("received shutdown signal")

			a.scheduler.StopAll()
			a.scheduler.Wait()

			logger.Info("media watch stopped")
			return nil
		},
	}
}

// refreshAll fetches every listed source once, logging failures. A source
// that fails keeps serving its fallback data.
func (a *app) refreshAll(ctx context.Context, contentOnly bool) {
	for _, src := range a.scheduler.Sources() {
		if contentOnly && !src.Kind.FeedsContent() {
			continue
		}
		stats, err := a.dashboard.RequestRefresh(ctx, src.ID)
		if err != nil {
			a.logger.Warn("refresh failed", "source", src.ID, "error", err)
			continue
		}
		a.logger.Info("source refreshed",
			"source", stats.SourceID,
			"fetched", stats.Fetched,
			"origin", stats.Origin,
			"duration", stats.Duration,
		)
	}
}
