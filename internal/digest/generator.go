package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media_watch/internal/domain"
	"media_watch/internal/matcher"
)

// Generator produces a digest for a profile. Local and Remote are
// interchangeable.
type Generator interface {
	Generate(ctx context.Context, profile domain.Profile) (*domain.Digest, error)
}

type Corpus interface {
	All() []domain.ContentItem
	ByLanguage(lang string) []domain.ContentItem
}

// Local selects items from the in-memory corpus and assembles the digest in
// process.
type Local struct {
	corpus    Corpus
	assembler *Assembler
	language  string
	opts      matcher.Options
	now       func() time.Time
}

func NewLocal(corpus Corpus, assembler *Assembler, language string, opts matcher.Options) *Local {
	return &Local{
		corpus:    corpus,
		assembler: assembler,
		language:  language,
		opts:      opts,
		now:       time.Now,
	}
}

// WithClock replaces the clock stamped on generated digests.
func (l *Local) WithClock(now func() time.Time) *Local {
	l.now = now
	return l
}

func (l *Local) Generate(_ context.Context, profile domain.Profile) (*domain.Digest, error) {
	items, err := l.Select(profile)
	if err != nil {
		return nil, err
	}
	d := l.assembler.Assemble(profile, items, l.now())
	return &d, nil
}

// Select picks the items for a profile. Default-language items are preferred;
// when there are too few of them the whole corpus is used. An empty corpus
// yields ErrNoContent.
func (l *Local) Select(profile domain.Profile) ([]domain.ContentItem, error) {
	minResults := l.opts.MinResults
	if minResults <= 0 {
		minResults = matcher.DefaultMinResults
	}

	slice := l.corpus.ByLanguage(l.language)
	if len(slice) < minResults {
		slice = l.corpus.All()
	}

	items, err := matcher.Match(profile, slice, l.opts)
	if errors.Is(err, domain.ErrEmptyCorpus) {
		all := l.corpus.All()
		if len(all) == 0 {
			return nil, domain.ErrNoContent
		}
		items, err = matcher.Match(profile, all, l.opts)
	}
	if err != nil {
		return nil, fmt.Errorf("match profile %s: %w", profile.ID, err)
	}
	return items, nil
}

// RemoteClient asks the backend to assemble a digest server-side.
type RemoteClient interface {
	GenerateDigest(ctx context.Context, profileID string) (*domain.Digest, error)
}

// Remote trusts the backend digest as-is.
type Remote struct {
	client RemoteClient
}

func NewRemote(client RemoteClient) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Generate(ctx context.Context, profile domain.Profile) (*domain.Digest, error) {
	d, err := r.client.GenerateDigest(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("generate remote digest: %w", err)
	}
	if d.ProfileID == "" {
		d.ProfileID = profile.ID
	}
	return d, nil
}
