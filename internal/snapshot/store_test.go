package snapshot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_watch/internal/domain"
)

var t0 = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

func newStore() *Store {
	return NewStore([]string{"stocks", "news"}).WithClock(func() time.Time { return t0 })
}

func TestGet_InitialAndUnknown(t *testing.T) {
	s := newStore()

	e, err := s.Get("stocks")
	require.NoError(t, err)
	assert.Equal(t, domain.OriginNone, e.Origin)
	assert.Nil(t, e.Batch)

	_, err = s.Get("nope")
	assert.True(t, errors.Is(err, domain.ErrUnknownSource))
}

func TestFallback_SeedsOnFirstFailure(t *testing.T) {
	s := newStore()

	e, err := s.Fallback("stocks", domain.KindQuotes)

	require.NoError(t, err)
	assert.Equal(t, domain.OriginSeed, e.Origin)
	assert.Len(t, e.Batch.Quotes, 8)
	assert.Equal(t, "stocks", e.Batch.SourceID)
}

func TestFallback_KeepsLastLiveAsCache(t *testing.T) {
	s := newStore()
	live := &domain.Batch{SourceID: "stocks", Kind: domain.KindQuotes, Quotes: []domain.Quote{{Ticker: "NFLX"}}}
	_, err := s.Replace(live)
	require.NoError(t, err)

	e, err := s.Fallback("stocks", domain.KindQuotes)

	require.NoError(t, err)
	assert.Equal(t, domain.OriginCache, e.Origin)
	assert.Same(t, live, e.Batch)
	assert.Equal(t, t0, e.StoredAt)

	e, err = s.Fallback("stocks", domain.KindQuotes)
	require.NoError(t, err)
	assert.Equal(t, domain.OriginCache, e.Origin)
}

func TestFallback_NoSeedForContentKinds(t *testing.T) {
	s := newStore()

	e, err := s.Fallback("news", domain.KindNews)

	require.NoError(t, err)
	assert.Equal(t, domain.OriginNone, e.Origin)
}

func TestReplace_AfterSeedGoesLive(t *testing.T) {
	s := newStore()
	_, _ = s.Fallback("stocks", domain.KindQuotes)

	e, err := s.Replace(&domain.Batch{SourceID: "stocks", Kind: domain.KindQuotes})

	require.NoError(t, err)
	assert.Equal(t, domain.OriginLive, e.Origin)
}

func TestReplace_UnknownSource(t *testing.T) {
	_, err := newStore().Replace(&domain.Batch{SourceID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrUnknownSource))
}
