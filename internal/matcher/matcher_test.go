package matcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_watch/internal/domain"
)

var base = time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)

// recent builds n items, most recent first, with generic text.
func recent(n int) []domain.ContentItem {
	items := make([]domain.ContentItem, n)
	for i := range items {
		items[i] = domain.ContentItem{
			ID:          fmt.Sprintf("id-%d", i),
			Title:       fmt.Sprintf("Weekly roundup %d", i),
			Summary:     "General industry news.",
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return items
}

func ids(items []domain.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestMatch_FallbackWhenNothingMatches(t *testing.T) {
	corpus := recent(10)
	profile := domain.Profile{ID: "x", Keywords: []string{"quantum"}}

	got, err := Match(profile, corpus, Options{MinResults: 3, MaxResults: 8})
	require.NoError(t, err)
	assert.Equal(t, ids(corpus[:8]), ids(got))
}

func TestMatch_PrecisionCaseInsensitive(t *testing.T) {
	corpus := recent(20)
	corpus[2].Title = "FUSION talks resume"
	corpus[5].Summary = "A proposed Fusion between two groups."
	corpus[11].Title = "Analysts on the fusion"
	corpus[17].Summary = "fusion blocked by regulator"

	profile := domain.Profile{ID: "x", Keywords: []string{"fusion"}}
	got, err := Match(profile, corpus, Options{MinResults: 3, MaxResults: 8})
	require.NoError(t, err)
	assert.Equal(t, []string{"id-2", "id-5", "id-11", "id-17"}, ids(got))
}

func TestMatch_FinancierFallbackIncludesNonMatching(t *testing.T) {
	corpus := []domain.ContentItem{
		{ID: "a", Title: "Stock rally for Netflix", PublishedAt: base},
		{ID: "b", Title: "Festival lineup announced", PublishedAt: base.Add(-time.Hour)},
		{ID: "c", Title: "Merger approved", PublishedAt: base.Add(-2 * time.Hour)},
	}
	profile := domain.Profile{ID: "financier", Name: "Financier", Keywords: []string{"stock", "revenue", "merger"}}

	got, err := Match(profile, corpus, Options{MinResults: 3, MaxResults: 8})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestMatch_TruncatesMatchesToMax(t *testing.T) {
	corpus := recent(12)
	for i := range corpus {
		corpus[i].Summary = "streaming numbers"
	}
	profile := domain.Profile{Keywords: []string{"streaming"}}

	got, err := Match(profile, corpus, Options{MinResults: 3, MaxResults: 5})
	require.NoError(t, err)
	assert.Equal(t, ids(corpus[:5]), ids(got))
}

func TestMatch_ExactlyMinResultsKeepsFilter(t *testing.T) {
	corpus := recent(6)
	corpus[1].Title = "Box office record"
	corpus[3].Title = "Box office slump"
	corpus[4].Summary = "box office weekend"
	profile := domain.Profile{Keywords: []string{"box office"}}

	got, err := Match(profile, corpus, Options{MinResults: 3, MaxResults: 8})
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "id-3", "id-4"}, ids(got))
}

func TestMatch_EmptySlice(t *testing.T) {
	_, err := Match(domain.Profile{}, nil, Options{})
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestMatch_DefaultsApplied(t *testing.T) {
	got, err := Match(domain.Profile{}, recent(10), Options{})
	require.NoError(t, err)
	assert.Len(t, got, DefaultMaxResults)
}

func TestMatch_DoesNotAliasInput(t *testing.T) {
	corpus := recent(4)
	got, err := Match(domain.Profile{}, corpus, Options{})
	require.NoError(t, err)
	got[0].Title = "changed"
	assert.Equal(t, "Weekly roundup 0", corpus[0].Title)
}

func TestEvaluate_Ranks(t *testing.T) {
	corpus := recent(4)
	corpus[1].Title = "Télévision : audiences record"
	corpus[3].Title = "AUDIENCE share"

	results := Evaluate(domain.Profile{Keywords: []string{" Audience "}}, corpus)
	require.Len(t, results, 4)
	assert.False(t, results[0].Matched)
	assert.Equal(t, 0, results[0].Rank)
	assert.True(t, results[1].Matched)
	assert.Equal(t, 1, results[1].Rank)
	assert.True(t, results[3].Matched)
	assert.Equal(t, 2, results[3].Rank)
}
