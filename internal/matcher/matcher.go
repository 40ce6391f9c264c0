// Package matcher selects corpus items for a subscriber profile.
package matcher

import (
	"strings"

	"golang.org/x/text/cases"

	"media_watch/internal/domain"
)

const (
	DefaultMinResults = 3
	DefaultMaxResults = 8
)

type Options struct {
	MinResults int
	MaxResults int
}

func (o Options) withDefaults() Options {
	if o.MinResults <= 0 {
		o.MinResults = DefaultMinResults
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// Evaluate reports, for every item in order, whether it matches the profile.
// Rank is the 1-based position among matching items, 0 for non-matches.
func Evaluate(profile domain.Profile, items []domain.ContentItem) []domain.MatchResult {
	fold := cases.Fold()
	keywords := make([]string, 0, len(profile.Keywords))
	for _, kw := range profile.Keywords {
		if kw = fold.String(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	results := make([]domain.MatchResult, len(items))
	rank := 0
	for i, it := range items {
		text := fold.String(it.Title + " " + it.Summary)
		matched := false
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				matched = true
				break
			}
		}
		results[i] = domain.MatchResult{Item: it, Matched: matched}
		if matched {
			rank++
			results[i].Rank = rank
		}
	}
	return results
}

// Match returns the items of the slice that mention one of the profile
// keywords, in slice order, capped at MaxResults. When fewer than MinResults
// items match, the keyword filter is dropped and the first MaxResults items
// of the slice are returned instead.
func Match(profile domain.Profile, items []domain.ContentItem, opts Options) ([]domain.ContentItem, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	opts = opts.withDefaults()

	var matched []domain.ContentItem
	for _, r := range Evaluate(profile, items) {
		if r.Matched {
			matched = append(matched, r.Item)
		}
	}

	if len(matched) < opts.MinResults {
		return head(items, opts.MaxResults), nil
	}
	return head(matched, opts.MaxResults), nil
}

func head(items []domain.ContentItem, n int) []domain.ContentItem {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]domain.ContentItem, len(items))
	copy(out, items)
	return out
}
