package domain

import "time"

// ContentItem is the canonical unit of the shared corpus. News articles and
// alerts are both normalized into it.
type ContentItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	Link        string    `json:"link"`
	Language    string    `json:"language,omitempty"` // empty means untagged
	PublishedAt time.Time `json:"published_at"`
	Category    string    `json:"category,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
}

// Key returns the uniqueness key of the item: the link, or the id when the
// item has no link.
func (c ContentItem) Key() string {
	if c.Link != "" {
		return c.Link
	}
	return c.ID
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Quote is a normalized financial quote.
type Quote struct {
	Ticker         string    `json:"ticker"`
	Name           string    `json:"name"`
	Sector         string    `json:"sector"`
	Price          float64   `json:"price"`
	ChangePct      float64   `json:"change_pct"`
	Currency       string    `json:"currency"`
	MarketCap      int64     `json:"market_cap"`
	MarketCapLabel string    `json:"market_cap_label"`
	At             time.Time `json:"at"`
}

// TableRow is a ranked row of a box-office or audience table.
type TableRow struct {
	Rank        int                `json:"rank"`
	Title       string             `json:"title"`
	Distributor string             `json:"distributor,omitempty"`
	Values      map[string]float64 `json:"values,omitempty"`
	Weeks       int                `json:"weeks,omitempty"`
}

// Batch is the normalized output of one adapter fetch. Only the slices that
// apply to the source kind are filled.
type Batch struct {
	SourceID   string
	Kind       SourceKind
	Items      []ContentItem
	Quotes     []Quote
	Rows       []TableRow
	LastUpdate time.Time
}

// Len returns the number of records in the batch regardless of their type.
func (b *Batch) Len() int {
	return len(b.Items) + len(b.Quotes) + len(b.Rows)
}
