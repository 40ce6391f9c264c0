package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"media_watch/internal/domain"
	"media_watch/internal/freshness"
	"media_watch/internal/snapshot"
)

// SyncService runs one fetch for one source and applies its outcome. The
// scheduler guarantees it is never entered concurrently for the same source.
type SyncService struct {
	source    domain.Source
	adapter   Source
	corpus    Corpus
	tracker   *freshness.Tracker
	snapshots *snapshot.Store
	logger    *slog.Logger
}

func NewSyncService(
	src domain.Source,
	adapter Source,
	corpus Corpus,
	tracker *freshness.Tracker,
	snapshots *snapshot.Store,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		source:    src,
		adapter:   adapter,
		corpus:    corpus,
		tracker:   tracker,
		snapshots: snapshots,
		logger:    logger.With("source", src.ID),
	}
}

// Sync fetches once. A fetch failure marks the source stale and falls back
// to cached or seed data; the error is returned for logging only.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()
	prev, _ := s.tracker.Get(s.source.ID)

	stats := &domain.SyncStats{
		SourceID: s.source.ID,
		Kind:     s.source.Kind,
	}

	batch, err := s.adapter.Fetch(ctx)
	if err != nil {
		stats.Origin = s.fallback()
		stats.Corpus = s.corpus.Len()
		stats.Duration = time.Since(startTime)

		state := s.tracker.MarkFailure(s.source.ID, err)
		s.logTransition(prev, state)
		s.logger.Warn("fetch failed",
			"error_kind", state.LastError,
			"origin", stats.Origin,
			"error", err,
		)
		return stats, fmt.Errorf("fetch source %s: %w", s.source.ID, err)
	}

	stats.Fetched = batch.Len()
	if err := s.apply(batch); err != nil {
		return stats, fmt.Errorf("apply batch: %w", err)
	}
	stats.Origin = domain.OriginLive
	stats.Corpus = s.corpus.Len()

	state := s.tracker.MarkSuccess(s.source.ID)
	s.logTransition(prev, state)

	stats.Duration = time.Since(startTime)
	s.logger.Info("sync completed",
		"fetched", stats.Fetched,
		"corpus", stats.Corpus,
		"duration", stats.Duration,
	)

	return stats, nil
}

// apply installs a live batch. Data is visible before the source is
// reported live.
func (s *SyncService) apply(batch *domain.Batch) error {
	if s.source.Kind.FeedsContent() {
		added, replaced := s.corpus.Upsert(batch.Items)
		s.logger.Debug("corpus upsert", "added", added, "replaced", replaced)
		return nil
	}

	if batch.SourceID == "" {
		batch.SourceID = s.source.ID
	}
	_, err := s.snapshots.Replace(batch)
	return err
}

func (s *SyncService) fallback() domain.Origin {
	if s.source.Kind.FeedsContent() {
		if s.corpus.Len() > 0 {
			return domain.OriginCache
		}
		return domain.OriginNone
	}

	entry, err := s.snapshots.Fallback(s.source.ID, s.source.Kind)
	if err != nil {
		s.logger.Error("snapshot fallback", "error", err)
		return domain.OriginNone
	}
	return entry.Origin
}

func (s *SyncService) logTransition(prev, next domain.FetchState) {
	if prev.Live == next.Live && prev != (domain.FetchState{}) {
		return
	}
	if next.Live {
		s.logger.Info("source live", "last_updated_at", next.LastUpdatedAt)
		return
	}
	s.logger.Warn("source stale",
		"last_error", next.LastError,
		"reason", next.Reason,
		"last_updated_at", next.LastUpdatedAt,
	)
}
