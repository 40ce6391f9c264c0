package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"media_watch/internal/domain"
	"media_watch/internal/source"
)

// GenerateDigest asks the backend to assemble a digest for a profile.
func (c *Client) GenerateDigest(ctx context.Context, profileID string) (*domain.Digest, error) {
	path := fmt.Sprintf("/digests/%s/generate", url.PathEscape(profileID))

	var resp digestResponse
	if err := c.postJSON(ctx, path, &resp); err != nil {
		if errors.Is(err, errDecode) {
			return nil, domain.NewParseError("digests", err)
		}
		return nil, domain.NewNetworkError("digests", err)
	}
	if resp.Digest == nil {
		return nil, domain.NewParseError("digests", errors.New("missing digest field"))
	}

	r := resp.Digest
	d := &domain.Digest{
		ProfileID: r.Profile,
		Title:     r.Title,
		Subtitle:  r.Subtitle,
		Intro:     r.Intro,
		Outro:     r.Outro,
		Items:     make([]domain.ContentItem, 0, len(r.Articles)),
	}
	if d.ProfileID == "" {
		d.ProfileID = profileID
	}

	d.GeneratedAt = time.Now()
	if t, err := source.ParseTime(r.GeneratedAt); err == nil {
		d.GeneratedAt = t
	}

	for _, a := range r.Articles {
		d.Items = append(d.Items, domain.ContentItem{
			ID:      a.Link,
			Title:   a.Title,
			Summary: a.Summary,
			Source:  a.Source,
			Link:    a.Link,
		})
	}

	return d, nil
}
