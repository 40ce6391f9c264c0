// Package rss fetches the configured RSS and Atom feeds directly.
package rss

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"media_watch/internal/domain"
	"media_watch/internal/source"
)

// EntriesPerFeed is how many entries are read from the head of each feed.
const EntriesPerFeed = 15

type Feed struct {
	Name     string
	URL      string
	Category string
	Language string
}

type Adapter struct {
	sourceID   string
	feeds      []Feed
	httpClient *http.Client
	logger     *slog.Logger
}

func New(sourceID string, feeds []Feed, timeout time.Duration, logger *slog.Logger) *Adapter {
	return &Adapter{
		sourceID:   sourceID,
		feeds:      feeds,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("source", sourceID),
	}
}

func (a *Adapter) ID() string {
	return a.sourceID
}

// Fetch reads every feed concurrently. A feed that fails is logged and
// skipped; only when all feeds fail does Fetch return a NetworkError.
func (a *Adapter) Fetch(ctx context.Context) (*domain.Batch, error) {
	results := make([][]domain.ContentItem, len(a.feeds))
	errs := make([]error, len(a.feeds))

	var g errgroup.Group
	for i, feed := range a.feeds {
		i, feed := i, feed
		g.Go(func() error {
			items, err := a.fetchFeed(ctx, feed)
			if err != nil {
				a.logger.Warn("feed fetch failed", "feed", feed.Name, "error", err)
				errs[i] = err
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	batch := &domain.Batch{SourceID: a.sourceID, Kind: domain.KindRSS, LastUpdate: time.Now()}
	failed := 0
	for i := range a.feeds {
		if errs[i] != nil {
			failed++
			continue
		}
		batch.Items = append(batch.Items, results[i]...)
	}

	if len(a.feeds) > 0 && failed == len(a.feeds) {
		return nil, domain.NewNetworkError(a.sourceID, fmt.Errorf("all %d feeds failed: %w", failed, errors.Join(errs...)))
	}

	a.logger.Debug("fetched feeds", "feeds", len(a.feeds)-failed, "failed", failed, "items", len(batch.Items))
	return batch, nil
}

func (a *Adapter) fetchFeed(ctx context.Context, feed Feed) ([]domain.ContentItem, error) {
	parser := gofeed.NewParser()
	parser.Client = a.httpClient
	parser.UserAgent = "MediaWatch/1.0"

	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed.Name, err)
	}

	entries := parsed.Items
	if len(entries) > EntriesPerFeed {
		entries = entries[:EntriesPerFeed]
	}

	items := make([]domain.ContentItem, 0, len(entries))
	for _, entry := range entries {
		item := toItem(feed, entry)
		if item.Key() == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func toItem(feed Feed, entry *gofeed.Item) domain.ContentItem {
	summary := entry.Description
	if summary == "" {
		summary = entry.Content
	}
	summary = source.CleanSummary(summary)
	title := source.StripHTML(entry.Title)

	var published time.Time
	switch {
	case entry.PublishedParsed != nil:
		published = *entry.PublishedParsed
	case entry.UpdatedParsed != nil:
		published = *entry.UpdatedParsed
	}

	id := entry.GUID
	if id == "" {
		id = entry.Link
	}

	return domain.ContentItem{
		ID:          id,
		Title:       title,
		Summary:     summary,
		Source:      feed.Name,
		Link:        entry.Link,
		Language:    feed.Language,
		PublishedAt: published,
		Category:    feed.Category,
		Priority:    source.ClassifyPriority(title, summary),
	}
}
