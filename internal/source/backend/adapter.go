package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"media_watch/internal/domain"
	"media_watch/internal/source"
)

// DefaultEndpoint returns the API path serving a source kind.
func DefaultEndpoint(kind domain.SourceKind) string {
	switch kind {
	case domain.KindNews:
		return "/news"
	case domain.KindAlerts:
		return "/alerts"
	default:
		return "/sources/" + string(kind)
	}
}

// Adapter fetches one configured source from the backend.
type Adapter struct {
	client *Client
	src    domain.Source
	path   string
	logger *slog.Logger
}

// NewAdapter binds a source descriptor to the client. RSS sources are
// served by the rss package, not the backend.
func NewAdapter(client *Client, src domain.Source) (*Adapter, error) {
	if src.Kind == domain.KindRSS || !src.Kind.Valid() {
		return nil, fmt.Errorf("backend adapter: unsupported kind %q", src.Kind)
	}

	path := src.Endpoint
	if path == "" {
		path = DefaultEndpoint(src.Kind)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &Adapter{
		client: client,
		src:    src,
		path:   path,
		logger: client.logger.With("source", src.ID),
	}, nil
}

func (a *Adapter) ID() string {
	return a.src.ID
}

// Fetch retrieves and normalizes one batch. Every error is a
// *domain.FetchError.
func (a *Adapter) Fetch(ctx context.Context) (*domain.Batch, error) {
	batch := &domain.Batch{SourceID: a.src.ID, Kind: a.src.Kind}

	var err error
	switch a.src.Kind {
	case domain.KindQuotes:
		err = a.fetchQuotes(ctx, batch)
	case domain.KindBoxOffice, domain.KindAudiences:
		err = a.fetchRows(ctx, batch)
	case domain.KindNews:
		err = a.fetchNews(ctx, batch)
	case domain.KindAlerts:
		err = a.fetchAlerts(ctx, batch)
	}
	if err != nil {
		return nil, a.classify(err)
	}

	a.logger.Debug("fetched batch", "kind", a.src.Kind, "records", batch.Len())
	return batch, nil
}

func (a *Adapter) classify(err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	if errors.Is(err, errDecode) {
		return domain.NewParseError(a.src.ID, err)
	}
	return domain.NewNetworkError(a.src.ID, err)
}

func (a *Adapter) shapeError(format string, args ...any) error {
	return domain.NewParseError(a.src.ID, fmt.Errorf(format, args...))
}

func (a *Adapter) fetchTable(ctx context.Context, batch *domain.Batch) (json.RawMessage, error) {
	var resp tableResponse
	if err := a.client.getJSON(ctx, a.path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, a.shapeError("missing data field")
	}
	batch.LastUpdate = a.parseTime(resp.updated())
	return resp.Data, nil
}

func (a *Adapter) fetchQuotes(ctx context.Context, batch *domain.Batch) error {
	raw, err := a.fetchTable(ctx, batch)
	if err != nil {
		return err
	}

	var records []quoteRecord
	if err := decode(raw, &records); err != nil {
		return err
	}

	for _, r := range records {
		if r.Ticker == "" {
			a.logger.Warn("skipping quote without ticker", "name", r.Name)
			continue
		}

		at := a.parseTime(r.Timestamp)
		if at.IsZero() {
			at = batch.LastUpdate
		}

		batch.Quotes = append(batch.Quotes, domain.Quote{
			Ticker:         r.Ticker,
			Name:           r.Name,
			Sector:         r.Sector,
			Price:          r.Price,
			ChangePct:      r.Change,
			Currency:       r.Currency,
			MarketCap:      r.MarketCap,
			MarketCapLabel: source.FormatMarketCap(r.MarketCap, r.Currency),
			At:             at,
		})
	}
	return nil
}

var (
	titleColumns       = []string{"film", "title", "program", "show"}
	distributorColumns = []string{"distributor", "studio", "channel"}
)

func (a *Adapter) fetchRows(ctx context.Context, batch *domain.Batch) error {
	raw, err := a.fetchTable(ctx, batch)
	if err != nil {
		return err
	}

	var records []rowRecord
	if err := decode(raw, &records); err != nil {
		return err
	}

	for i, r := range records {
		row, ok := toRow(r)
		if !ok {
			a.logger.Warn("skipping row without title", "index", i)
			continue
		}
		if row.Rank == 0 {
			row.Rank = i + 1
		}
		batch.Rows = append(batch.Rows, row)
	}
	return nil
}

func toRow(r rowRecord) (domain.TableRow, bool) {
	row := domain.TableRow{Values: make(map[string]float64)}
	used := map[string]bool{"rank": true, "weeks": true}

	row.Title = firstString(r, titleColumns, used)
	if row.Title == "" {
		return row, false
	}
	row.Distributor = firstString(r, distributorColumns, used)

	if v, ok := r["rank"].(float64); ok {
		row.Rank = int(v)
	}
	if v, ok := r["weeks"].(float64); ok {
		row.Weeks = int(v)
	}

	for k, v := range r {
		if used[k] {
			continue
		}
		if f, ok := v.(float64); ok {
			row.Values[k] = f
		}
	}
	return row, true
}

// firstString returns the first non-empty column among keys and marks it used.
func firstString(r rowRecord, keys []string, used map[string]bool) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			used[k] = true
			return s
		}
	}
	return ""
}

func (a *Adapter) fetchNews(ctx context.Context, batch *domain.Batch) error {
	var resp newsResponse
	if err := a.client.getJSON(ctx, a.path, &resp); err != nil {
		return err
	}
	if resp.Articles == nil {
		return a.shapeError("missing articles field")
	}
	batch.LastUpdate = a.parseTime(resp.updated())

	for _, r := range *resp.Articles {
		item, ok := a.articleItem(r)
		if !ok {
			continue
		}
		batch.Items = append(batch.Items, item)
	}
	return nil
}

func (a *Adapter) articleItem(r articleRecord) (domain.ContentItem, bool) {
	summary := source.CleanSummary(r.Summary)
	item := domain.ContentItem{
		ID:          r.ID,
		Title:       source.StripHTML(r.Title),
		Summary:     summary,
		Source:      r.Source,
		Link:        r.Link,
		Language:    r.Lang,
		PublishedAt: a.parseTime(r.Published),
		Category:    r.Category,
		Priority:    source.ParsePriority(r.Priority, r.Title, summary),
	}
	if item.ID == "" {
		item.ID = item.Link
	}
	if item.Key() == "" {
		a.logger.Warn("skipping article without link or id", "title", item.Title)
		return item, false
	}
	return item, true
}

// alertsPayload accepts both alert feeds and the monitored-source listing.
type alertsPayload struct {
	alertsResponse
	alertSourcesResponse
}

func (a *Adapter) fetchAlerts(ctx context.Context, batch *domain.Batch) error {
	var resp alertsPayload
	if err := a.client.getJSON(ctx, a.path, &resp); err != nil {
		return err
	}

	switch {
	case resp.Alerts != nil:
		batch.LastUpdate = a.parseTime(resp.updated())
		for _, r := range *resp.Alerts {
			item, ok := a.alertItem(r)
			if !ok {
				continue
			}
			batch.Items = append(batch.Items, item)
		}
	case resp.Sources != nil:
		for _, r := range *resp.Sources {
			if r.Name == "" {
				continue
			}
			batch.Items = append(batch.Items, alertSourceItem(r))
		}
	default:
		return a.shapeError("missing alerts or sources field")
	}
	return nil
}

func (a *Adapter) alertItem(r alertRecord) (domain.ContentItem, bool) {
	return a.articleItem(articleRecord{
		ID:        r.ID.String(),
		Title:     r.Title,
		Link:      r.Link,
		Published: r.Time,
		Source:    r.Source,
		Category:  r.Category,
		Summary:   r.AISummary,
		Priority:  r.Priority,
		Lang:      r.Lang,
	})
}

func alertSourceItem(r alertSourceRecord) domain.ContentItem {
	link := r.URL
	if link != "" && !strings.Contains(link, "://") {
		link = "https://" + link
	}
	return domain.ContentItem{
		ID:       "alert-source:" + strings.ToLower(r.Name),
		Title:    r.Name,
		Summary:  strings.TrimSpace(r.Type + " " + r.Status),
		Source:   r.Name,
		Link:     link,
		Category: "Veille",
		Priority: domain.PriorityLow,
	}
}

func (a *Adapter) parseTime(s string) (t time.Time) {
	if s == "" {
		return t
	}
	t, err := source.ParseTime(s)
	if err != nil {
		a.logger.Debug("unparsed timestamp", "value", s)
	}
	return t
}
