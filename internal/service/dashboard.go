package service

import (
	"context"
	"fmt"
	"log/slog"

	"media_watch/internal/domain"
	"media_watch/internal/export"
	"media_watch/internal/freshness"
	"media_watch/internal/snapshot"
)

type DashboardConfig struct {
	Profiles        []domain.Profile
	DefaultLanguage string
	Newsletters     bool
	LinkedIn        bool
}

// Dashboard is the read and command surface offered to presentation layers.
type Dashboard struct {
	cfg       DashboardConfig
	tracker   *freshness.Tracker
	snapshots *snapshot.Store
	corpus    Corpus
	refresher Refresher
	generator Generator
	sink      *export.Sink
	saver     Saver
	logger    *slog.Logger
}

func NewDashboard(
	cfg DashboardConfig,
	tracker *freshness.Tracker,
	snapshots *snapshot.Store,
	corpus Corpus,
	refresher Refresher,
	generator Generator,
	sink *export.Sink,
	saver Saver,
	logger *slog.Logger,
) *Dashboard {
	return &Dashboard{
		cfg:       cfg,
		tracker:   tracker,
		snapshots: snapshots,
		corpus:    corpus,
		refresher: refresher,
		generator: generator,
		sink:      sink,
		saver:     saver,
		logger:    logger.With("component", "dashboard"),
	}
}

func (d *Dashboard) Freshness(sourceID string) (domain.FetchState, error) {
	return d.tracker.Get(sourceID)
}

func (d *Dashboard) AllFreshness() map[string]domain.FetchState {
	return d.tracker.All()
}

// RequestRefresh fetches a source now. If a fetch is already running the
// caller shares its result.
func (d *Dashboard) RequestRefresh(ctx context.Context, sourceID string) (*domain.SyncStats, error) {
	if _, err := d.tracker.Get(sourceID); err != nil {
		return nil, err
	}
	return d.refresher.RefreshNow(ctx, sourceID)
}

func (d *Dashboard) Snapshot(sourceID string) (snapshot.Entry, error) {
	return d.snapshots.Get(sourceID)
}

func (d *Dashboard) Profiles() []domain.Profile {
	out := make([]domain.Profile, len(d.cfg.Profiles))
	copy(out, d.cfg.Profiles)
	return out
}

func (d *Dashboard) profile(id string) (domain.Profile, error) {
	for _, p := range d.cfg.Profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrUnknownProfile, id)
}

// Search builds the digest for a profile.
func (d *Dashboard) Search(ctx context.Context, profileID string) (*domain.Digest, error) {
	if !d.cfg.Newsletters {
		return nil, fmt.Errorf("newsletters: %w", domain.ErrModuleDisabled)
	}

	profile, err := d.profile(profileID)
	if err != nil {
		return nil, err
	}

	digest, err := d.generator.Generate(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("generate digest: %w", err)
	}

	d.logger.Info("digest generated", "profile", profile.ID, "items", len(digest.Items))
	return digest, nil
}

func (d *Dashboard) ExportText(digest *domain.Digest) string {
	return d.sink.Render(digest)
}

func (d *Dashboard) ExportFile(digest *domain.Digest) export.File {
	return d.sink.Export(digest)
}

// Deliver exports the digest and hands it to the configured savers.
func (d *Dashboard) Deliver(ctx context.Context, digest *domain.Digest) (export.File, error) {
	file := d.sink.Export(digest)
	if d.saver == nil {
		return file, nil
	}
	if err := d.saver.Save(ctx, file, digest); err != nil {
		return file, fmt.Errorf("deliver %s: %w", file.Name, err)
	}
	return file, nil
}

// ContentPicks lists the most recent default-language items as LinkedIn post
// candidates.
func (d *Dashboard) ContentPicks(limit int) ([]domain.ContentItem, error) {
	if !d.cfg.LinkedIn {
		return nil, fmt.Errorf("linkedin: %w", domain.ErrModuleDisabled)
	}

	items := d.corpus.ByLanguage(d.cfg.DefaultLanguage)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
