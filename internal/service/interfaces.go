package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"media_watch/internal/domain"
	"media_watch/internal/export"
)

// Source is a SourceAdapter: one fetch yields one normalized batch or a
// *domain.FetchError.
type Source interface {
	ID() string
	Fetch(ctx context.Context) (*domain.Batch, error)
}

type Corpus interface {
	Upsert(items []domain.ContentItem) (added, replaced int)
	All() []domain.ContentItem
	ByLanguage(lang string) []domain.ContentItem
	Len() int
}

type Generator interface {
	Generate(ctx context.Context, profile domain.Profile) (*domain.Digest, error)
}

// Refresher triggers an out-of-schedule fetch, coalescing with one already
// in flight.
type Refresher interface {
	RefreshNow(ctx context.Context, sourceID string) (*domain.SyncStats, error)
}

type Saver interface {
	Save(ctx context.Context, file export.File, d *domain.Digest) error
}
