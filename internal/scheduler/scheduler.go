// Package scheduler owns the polling timers of every source.
package scheduler

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"media_watch/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context) (*domain.SyncStats, error)
}

// TickerFunc returns a tick channel and its stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

type job struct {
	source domain.Source
	syncer Syncer
	cancel context.CancelFunc
}

// Scheduler polls registered sources. Every fetch of a source, scheduled or
// manual, goes through one singleflight key, so a source never has two
// fetches in flight and a manual refresh joins a running fetch.
type Scheduler struct {
	mu           sync.Mutex
	jobs         map[string]*job
	flight       singleflight.Group
	fetchTimeout time.Duration
	ticker       TickerFunc
	logger       *slog.Logger

	loops    sync.WaitGroup
	inflight sync.WaitGroup
}

func New(fetchTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		jobs:         make(map[string]*job),
		fetchTimeout: fetchTimeout,
		ticker:       realTicker,
		logger:       logger.With("component", "scheduler"),
	}
}

// WithTicker replaces the interval source.
func (s *Scheduler) WithTicker(f TickerFunc) *Scheduler {
	s.ticker = f
	return s
}

func (s *Scheduler) Register(src domain.Source, syncer Syncer) error {
	if src.PollInterval <= 0 {
		return fmt.Errorf("register %s: poll interval must be positive", src.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[src.ID]; ok {
		return fmt.Errorf("register %s: already registered", src.ID)
	}
	s.jobs[src.ID] = &job{source: src, syncer: syncer}
	return nil
}

// Sources returns the registered sources sorted by id.
func (s *Scheduler) Sources() []domain.Source {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Source, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.source)
	}
	slices.SortFunc(out, func(a, b domain.Source) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Start begins polling a source. The first fetch fires immediately. Starting
// a running source is a no-op.
func (s *Scheduler) Start(ctx context.Context, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[sourceID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}
	if j.cancel != nil {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	s.loops.Add(1)
	go s.loop(loopCtx, j)

	s.logger.Info("source scheduled", "source", sourceID, "interval", j.source.PollInterval)
	return nil
}

// Stop cancels future fetches. A fetch in flight completes and still
// updates state.
func (s *Scheduler) Stop(sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[sourceID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
		s.logger.Info("source unscheduled", "source", sourceID)
	}
	return nil
}

func (s *Scheduler) StartAll(ctx context.Context) {
	for _, src := range s.Sources() {
		_ = s.Start(ctx, src.ID)
	}
}

func (s *Scheduler) StopAll() {
	for _, src := range s.Sources() {
		_ = s.Stop(src.ID)
	}
}

// Wait blocks until every polling loop has exited and every fetch has
// finished. Call it after StopAll or after cancelling the start context.
func (s *Scheduler) Wait() {
	s.loops.Wait()
	s.inflight.Wait()
}

// RefreshNow fetches a source out of schedule. When a fetch for the source
// is already running the caller receives that fetch's result. Cancelling ctx
// abandons the wait but not the fetch.
func (s *Scheduler) RefreshNow(ctx context.Context, sourceID string) (*domain.SyncStats, error) {
	s.mu.Lock()
	j, ok := s.jobs[sourceID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}

	ch := s.flight.DoChan(sourceID, func() (any, error) {
		return s.fetch(ctx, j)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		stats, _ := res.Val.(*domain.SyncStats)
		return stats, res.Err
	}
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.loops.Done()

	s.trigger(ctx, j)

	tick, stop := s.ticker(j.source.PollInterval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			if ctx.Err() != nil {
				return
			}
			s.trigger(ctx, j)
		}
	}
}

// trigger runs a scheduled fetch and waits for it, so the loop never piles
// up fetches behind a slow source.
func (s *Scheduler) trigger(ctx context.Context, j *job) {
	_, err, shared := s.flight.Do(j.source.ID, func() (any, error) {
		return s.fetch(ctx, j)
	})
	if err != nil {
		s.logger.Debug("scheduled fetch failed", "source", j.source.ID, "shared", shared, "error", err)
	}
}

// fetch runs one sync on a context detached from the caller's cancellation
// and bounded by the fetch timeout.
func (s *Scheduler) fetch(ctx context.Context, j *job) (*domain.SyncStats, error) {
	s.inflight.Add(1)
	defer s.inflight.Done()

	fetchCtx := context.WithoutCancel(ctx)
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(fetchCtx, s.fetchTimeout)
		defer cancel()
	}

	return j.syncer.Sync(fetchCtx)
}
