package main

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"media_watch/internal/config"
	"media_watch/internal/corpus"
	"media_watch/internal/digest"
	"media_watch/internal/domain"
	"media_watch/internal/export"
	"media_watch/internal/freshness"
	"media_watch/internal/matcher"
	"media_watch/internal/publisher"
	"media_watch/internal/scheduler"
	"media_watch/internal/service"
	"media_watch/internal/snapshot"
	"media_watch/internal/source/backend"
	"media_watch/internal/source/rss"
	"media_watch/internal/storage/postgres"
)

// app is the wired engine shared by every command.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	scheduler *scheduler.Scheduler
	dashboard *service.Dashboard
	closers   []func() error
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	ids := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		ids = append(ids, s.ID)
	}

	articles := corpus.New(cfg.DefaultLanguage)
	tracker := freshness.NewTracker(ids)
	snapshots := snapshot.NewStore(ids)

	client := backend.New(backend.Config{
		BaseURL:        cfg.Backend.BaseURL,
		Timeout:        cfg.Backend.Timeout,
		MaxAttempts:    cfg.Backend.Retry.MaxAttempts,
		InitialBackoff: cfg.Backend.Retry.InitialBackoff,
		MaxBackoff:     cfg.Backend.Retry.MaxBackoff,
	}, logger)

	a.scheduler = scheduler.New(cfg.FetchTimeout, logger)
	for _, sc := range cfg.Sources {
		src := sc.Source()

		adapter, err := newAdapter(cfg, client, src, logger)
		if err != nil {
			return nil, err
		}

		syncer := service.NewSyncService(src, adapter, articles, tracker, snapshots, logger)
		if err := a.scheduler.Register(src, syncer); err != nil {
			return nil, err
		}

		if sc.Preseed {
			if _, err := snapshots.Fallback(src.ID, src.Kind); err != nil {
				return nil, fmt.Errorf("preseed %s: %w", src.ID, err)
			}
		}
	}

	var generator service.Generator
	switch cfg.Digest.Mode {
	case "remote":
		generator = digest.NewRemote(client)
	default:
		generator = digest.NewLocal(articles, digest.NewAssembler(cfg.Digest.Brand), cfg.DefaultLanguage, matcher.Options{
			MinResults: cfg.Matching.MinResults,
			MaxResults: cfg.Matching.MaxResults,
		})
	}

	savers, err := a.savers()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.dashboard = service.NewDashboard(
		service.DashboardConfig{
			Profiles:        cfg.Profiles,
			DefaultLanguage: cfg.DefaultLanguage,
			Newsletters:     cfg.Modules.Newsletters.IsEnabled(),
			LinkedIn:        cfg.Modules.LinkedIn.IsEnabled(),
		},
		tracker,
		snapshots,
		articles,
		a.scheduler,
		generator,
		export.NewSink(cfg.Digest.Brand),
		export.NewFanout(logger, savers...),
		logger,
	)

	return a, nil
}

func newAdapter(cfg *config.Config, client *backend.Client, src domain.Source, logger *slog.Logger) (service.Source, error) {
	if src.Kind != domain.KindRSS {
		adapter, err := backend.NewAdapter(client, src)
		if err != nil {
			return nil, fmt.Errorf("create adapter: %w", err)
		}
		return adapter, nil
	}

	feeds := make([]rss.Feed, 0, len(cfg.RSSFeeds))
	for _, f := range cfg.RSSFeeds {
		feeds = append(feeds, rss.Feed{
			Name:     f.Name,
			URL:      f.URL,
			Category: f.Category,
			Language: f.Language,
		})
	}
	return rss.New(src.ID, feeds, cfg.Backend.Timeout, logger), nil
}

// savers builds the delivery targets: the export directory always, RabbitMQ
// and the postgres archive when configured.
func (a *app) savers() ([]export.Saver, error) {
	savers := []export.Saver{export.NewDirSaver(a.cfg.Export.Dir)}

	if a.cfg.RabbitMQ.URL != "" {
		pub, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        a.cfg.RabbitMQ.URL,
			Exchange:   a.cfg.RabbitMQ.Exchange,
			RoutingKey: a.cfg.RabbitMQ.RoutingKey,
			QueueName:  a.cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		savers = append(savers, pub)
	}

	if a.cfg.Database.Enabled() {
		db, err := sqlx.Connect("postgres", a.cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.logger.Info("connected to database")
		savers = append(savers, postgres.NewDigestArchive(db, postgres.NewTransactionManager(db)))
	}

	return savers, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
