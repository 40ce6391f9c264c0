// Package snapshot keeps the last known-good tabular batch of every quote,
// box-office and audience source.
package snapshot

import (
	"fmt"
	"sync/atomic"
	"time"

	"media_watch/internal/domain"
	"media_watch/internal/source/seed"
)

// Entry is what consumers are served for a source.
type Entry struct {
	Batch    *domain.Batch
	Origin   domain.Origin
	StoredAt time.Time
}

// Store is safe for concurrent use. Like the freshness tracker it is sized
// once at start and entries are swapped whole.
type Store struct {
	entries map[string]*atomic.Pointer[Entry]
	now     func() time.Time
}

func NewStore(sourceIDs []string) *Store {
	entries := make(map[string]*atomic.Pointer[Entry], len(sourceIDs))
	for _, id := range sourceIDs {
		p := &atomic.Pointer[Entry]{}
		p.Store(&Entry{Origin: domain.OriginNone})
		entries[id] = p
	}
	return &Store{entries: entries, now: time.Now}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Get(sourceID string) (Entry, error) {
	p, ok := s.entries[sourceID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}
	return *p.Load(), nil
}

// Replace installs a live batch.
func (s *Store) Replace(batch *domain.Batch) (Entry, error) {
	p, ok := s.entries[batch.SourceID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, batch.SourceID)
	}
	next := Entry{Batch: batch, Origin: domain.OriginLive, StoredAt: s.now()}
	p.Store(&next)
	return next, nil
}

// Fallback is applied after a failed fetch. A previously fetched batch is
// kept and relabeled as cache; otherwise the seed for the kind is installed
// if one exists.
func (s *Store) Fallback(sourceID string, kind domain.SourceKind) (Entry, error) {
	p, ok := s.entries[sourceID]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}

	prev := p.Load()
	switch prev.Origin {
	case domain.OriginLive, domain.OriginCache:
		next := *prev
		next.Origin = domain.OriginCache
		p.Store(&next)
		return next, nil
	case domain.OriginSeed:
		return *prev, nil
	}

	batch, ok := seed.For(sourceID, kind)
	if !ok {
		return *prev, nil
	}
	next := Entry{Batch: batch, Origin: domain.OriginSeed, StoredAt: s.now()}
	p.Store(&next)
	return next, nil
}
