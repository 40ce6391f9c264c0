// Package freshness tracks the FetchState of every configured source.
//
// States are immutable values swapped atomically, so readers always observe
// either the previous or the next complete state.
package freshness

import (
	"fmt"
	"sync/atomic"
	"time"

	"media_watch/internal/domain"
)

type Tracker struct {
	states map[string]*atomic.Pointer[domain.FetchState]
	now    func() time.Time
}

// NewTracker creates a tracker for a fixed set of source ids. Sources are
// never added or removed during a run, so the map itself is read-only.
func NewTracker(sourceIDs []string) *Tracker {
	states := make(map[string]*atomic.Pointer[domain.FetchState], len(sourceIDs))
	for _, id := range sourceIDs {
		p := &atomic.Pointer[domain.FetchState]{}
		p.Store(&domain.FetchState{})
		states[id] = p
	}
	return &Tracker{states: states, now: time.Now}
}

// WithClock replaces the clock used to stamp successful fetches.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

func (t *Tracker) Get(sourceID string) (domain.FetchState, error) {
	p, ok := t.states[sourceID]
	if !ok {
		return domain.FetchState{}, fmt.Errorf("%w: %s", domain.ErrUnknownSource, sourceID)
	}
	return *p.Load(), nil
}

// MarkSuccess records a successful fetch and returns the new state.
func (t *Tracker) MarkSuccess(sourceID string) domain.FetchState {
	next := domain.FetchState{
		Live:          true,
		LastUpdatedAt: t.now(),
	}
	t.store(sourceID, next)
	return next
}

// MarkFailure records a failed fetch. The last successful timestamp is kept
// so consumers can show how old the served data is.
func (t *Tracker) MarkFailure(sourceID string, err error) domain.FetchState {
	var prev domain.FetchState
	if p, ok := t.states[sourceID]; ok {
		prev = *p.Load()
	}
	next := domain.FetchState{
		Live:          false,
		LastUpdatedAt: prev.LastUpdatedAt,
		LastError:     domain.ErrorKindOf(err),
	}
	if err != nil {
		next.Reason = err.Error()
	}
	t.store(sourceID, next)
	return next
}

// All returns a copy of every state keyed by source id.
func (t *Tracker) All() map[string]domain.FetchState {
	out := make(map[string]domain.FetchState, len(t.states))
	for id, p := range t.states {
		out[id] = *p.Load()
	}
	return out
}

func (t *Tracker) store(sourceID string, s domain.FetchState) {
	p, ok := t.states[sourceID]
	if !ok {
		return
	}
	p.Store(&s)
}
