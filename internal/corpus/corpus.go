// Package corpus holds the shared, deduplicated collection of content items.
package corpus

import (
	"sort"
	"sync"

	"media_watch/internal/domain"
)

type entry struct {
	item domain.ContentItem
	seq  uint64
}

// Corpus keeps items sorted by PublishedAt descending, ties broken by
// insertion order. A re-upserted key replaces the stored item but keeps its
// original insertion sequence.
type Corpus struct {
	mu          sync.RWMutex
	entries     []entry
	index       map[string]int
	nextSeq     uint64
	defaultLang string
}

// New creates an empty corpus. Items without a language tag are served to
// readers asking for defaultLang.
func New(defaultLang string) *Corpus {
	return &Corpus{
		index:       make(map[string]int),
		defaultLang: defaultLang,
	}
}

// Upsert merges a batch. The whole batch becomes visible at once.
func (c *Corpus) Upsert(items []domain.ContentItem) (added, replaced int) {
	if len(items) == 0 {
		return 0, 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range items {
		key := it.Key()
		if key == "" {
			continue
		}
		if i, ok := c.index[key]; ok {
			c.entries[i].item = it
			replaced++
			continue
		}
		c.entries = append(c.entries, entry{item: it, seq: c.nextSeq})
		c.index[key] = len(c.entries) - 1
		c.nextSeq++
		added++
	}

	sort.SliceStable(c.entries, func(i, j int) bool {
		a, b := c.entries[i], c.entries[j]
		if !a.item.PublishedAt.Equal(b.item.PublishedAt) {
			return a.item.PublishedAt.After(b.item.PublishedAt)
		}
		return a.seq < b.seq
	})
	for i, e := range c.entries {
		c.index[e.item.Key()] = i
	}

	return added, replaced
}

// All returns every item, most recent first.
func (c *Corpus) All() []domain.ContentItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.ContentItem, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.item
	}
	return out
}

// ByLanguage returns the items tagged with lang, most recent first. Untagged
// items are included when lang is the default language.
func (c *Corpus) ByLanguage(lang string) []domain.ContentItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.ContentItem
	for _, e := range c.entries {
		if e.item.Language == lang || (e.item.Language == "" && lang == c.defaultLang) {
			out = append(out, e.item)
		}
	}
	return out
}

func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
