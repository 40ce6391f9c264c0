package corpus

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_watch/internal/domain"
)

var base = time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)

func item(n int, lang string, age time.Duration) domain.ContentItem {
	return domain.ContentItem{
		ID:          fmt.Sprintf("id-%d", n),
		Title:       fmt.Sprintf("Title %d", n),
		Link:        fmt.Sprintf("https://example.com/%d", n),
		Language:    lang,
		PublishedAt: base.Add(-age),
	}
}

func requireSorted(t *testing.T, items []domain.ContentItem) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		require.False(t, items[i].PublishedAt.After(items[i-1].PublishedAt),
			"item %d (%s) is newer than item %d (%s)", i, items[i].PublishedAt, i-1, items[i-1].PublishedAt)
	}
}

func TestUpsert_IsIdempotent(t *testing.T) {
	c := New("fr")
	it := item(1, "fr", time.Hour)

	c.Upsert([]domain.ContentItem{it})
	it.Title = "Updated"
	added, replaced := c.Upsert([]domain.ContentItem{it})

	assert.Equal(t, 0, added)
	assert.Equal(t, 1, replaced)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Updated", c.All()[0].Title)
}

func TestUpsert_KeyFallsBackToID(t *testing.T) {
	c := New("fr")
	a := domain.ContentItem{ID: "alert-1", Title: "A", PublishedAt: base}
	b := domain.ContentItem{ID: "alert-1", Title: "B", PublishedAt: base}

	c.Upsert([]domain.ContentItem{a})
	c.Upsert([]domain.ContentItem{b})

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "B", c.All()[0].Title)
}

func TestUpsert_SkipsItemsWithoutKey(t *testing.T) {
	c := New("fr")
	added, _ := c.Upsert([]domain.ContentItem{{Title: "no key"}})
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, c.Len())
}

func TestAll_OrderedByPublishedDesc(t *testing.T) {
	c := New("fr")
	c.Upsert([]domain.ContentItem{item(1, "", 5*time.Hour), item(2, "", time.Hour)})
	c.Upsert([]domain.ContentItem{item(3, "", 3*time.Hour), item(4, "", 0)})

	got := c.All()
	requireSorted(t, got)
	assert.Equal(t, "id-4", got[0].ID)
	assert.Equal(t, "id-1", got[3].ID)
}

func TestAll_TiesKeepInsertionOrder(t *testing.T) {
	c := New("fr")
	c.Upsert([]domain.ContentItem{item(1, "", time.Hour), item(2, "", time.Hour)})
	c.Upsert([]domain.ContentItem{item(3, "", time.Hour)})

	// replacing item 1 must not move it behind 2 and 3
	c.Upsert([]domain.ContentItem{item(1, "", time.Hour)})

	got := c.All()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestUpsert_ReplacementCanMoveItem(t *testing.T) {
	c := New("fr")
	c.Upsert([]domain.ContentItem{item(1, "", 2*time.Hour), item(2, "", time.Hour)})

	newer := item(1, "", 0)
	c.Upsert([]domain.ContentItem{newer})

	got := c.All()
	assert.Equal(t, "id-1", got[0].ID)
	requireSorted(t, got)
}

func TestByLanguage_UntaggedCountsAsDefault(t *testing.T) {
	c := New("fr")
	c.Upsert([]domain.ContentItem{
		item(1, "fr", time.Hour),
		item(2, "en", 2*time.Hour),
		item(3, "", 3*time.Hour),
	})

	fr := c.ByLanguage("fr")
	require.Len(t, fr, 2)
	assert.Equal(t, "id-1", fr[0].ID)
	assert.Equal(t, "id-3", fr[1].ID)

	en := c.ByLanguage("en")
	require.Len(t, en, 1)
	assert.Equal(t, "id-2", en[0].ID)
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := New("fr")
	c.Upsert([]domain.ContentItem{item(1, "", 0)})

	got := c.All()
	got[0].Title = "mutated"
	assert.Equal(t, "Title 1", c.All()[0].Title)
}

func TestUpsert_ConcurrentWritersKeepInvariant(t *testing.T) {
	c := New("fr")
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			batch := make([]domain.ContentItem, 0, 10)
			for i := 0; i < 10; i++ {
				batch = append(batch, item(w*10+i, "", time.Duration(i*w)*time.Minute))
			}
			c.Upsert(batch)
		}(w)
	}

	for i := 0; i < 20; i++ {
		got := c.All()
		requireSorted(t, got)
		assert.Zero(t, len(got)%10, "reader observed a partial batch")
	}
	wg.Wait()

	assert.Equal(t, 80, c.Len())
	requireSorted(t, c.All())
}
