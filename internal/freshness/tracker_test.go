package freshness

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_watch/internal/domain"
)

func TestTracker_InitialStateIsNeverFetched(t *testing.T) {
	tr := NewTracker([]string{"news"})

	st, err := tr.Get("news")
	require.NoError(t, err)
	assert.False(t, st.Live)
	assert.True(t, st.LastUpdatedAt.IsZero())
	assert.Empty(t, st.LastError)
}

func TestTracker_UnknownSource(t *testing.T) {
	tr := NewTracker(nil)
	_, err := tr.Get("ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestTracker_FailureThenSuccessEndsLive(t *testing.T) {
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	tr := NewTracker([]string{"news"}).WithClock(func() time.Time { return now })

	failed := tr.MarkFailure("news", domain.NewNetworkError("news", errors.New("dial tcp: refused")))
	assert.False(t, failed.Live)
	assert.Equal(t, "NetworkError", failed.LastError)
	assert.Contains(t, failed.Reason, "dial tcp")

	ok := tr.MarkSuccess("news")
	assert.True(t, ok.Live)
	assert.Empty(t, ok.LastError)
	assert.Empty(t, ok.Reason)
	assert.Equal(t, now, ok.LastUpdatedAt)

	got, err := tr.Get("news")
	require.NoError(t, err)
	assert.Equal(t, ok, got)
}

func TestTracker_FailureKeepsLastSuccessTimestamp(t *testing.T) {
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	tr := NewTracker([]string{"stocks"}).WithClock(func() time.Time { return now })

	tr.MarkSuccess("stocks")
	st := tr.MarkFailure("stocks", domain.NewParseError("stocks", errors.New("bad json")))

	assert.False(t, st.Live)
	assert.Equal(t, "ParseError", st.LastError)
	assert.Equal(t, now, st.LastUpdatedAt)
}

func TestTracker_LiveImpliesNoError(t *testing.T) {
	tr := NewTracker([]string{"a"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tr.MarkFailure("a", errors.New("boom"))
		}()
		go func() {
			defer wg.Done()
			tr.MarkSuccess("a")
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		st, err := tr.Get("a")
		require.NoError(t, err)
		if st.Live {
			require.Empty(t, st.LastError)
			require.False(t, st.LastUpdatedAt.IsZero())
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestTracker_All(t *testing.T) {
	tr := NewTracker([]string{"a", "b"})
	tr.MarkSuccess("a")

	all := tr.All()
	require.Len(t, all, 2)
	assert.True(t, all["a"].Live)
	assert.False(t, all["b"].Live)
}
