package backend

import "encoding/json"

// stamp carries the refresh time of a payload. The backend writes
// last_update; lastUpdate is accepted as well.
type stamp struct {
	LastUpdate      string `json:"last_update"`
	LastUpdateCamel string `json:"lastUpdate"`
}

func (s stamp) updated() string {
	if s.LastUpdate != "" {
		return s.LastUpdate
	}
	return s.LastUpdateCamel
}

// tableResponse is returned by GET /sources/{kind}.
type tableResponse struct {
	stamp
	Data   json.RawMessage `json:"data"`
	Source string          `json:"source"`
}

type quoteRecord struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	Currency  string  `json:"currency"`
	MarketCap int64   `json:"marketCap"`
	Timestamp string  `json:"timestamp"`
}

// rowRecord is decoded loosely: box office and audience tables share rank
// and title columns but differ in their figures.
type rowRecord map[string]any

type newsResponse struct {
	stamp
	Articles *[]articleRecord `json:"articles"`
}

type articleRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Source    string `json:"source"`
	Category  string `json:"category"`
	Summary   string `json:"summary"`
	Priority  string `json:"priority"`
	Lang      string `json:"lang"`
}

type alertsResponse struct {
	stamp
	Alerts *[]alertRecord `json:"alerts"`
}

type alertRecord struct {
	ID        json.Number `json:"id"`
	Title     string      `json:"title"`
	Source    string      `json:"source"`
	Time      string      `json:"time"`
	Priority  string      `json:"priority"`
	Category  string      `json:"category"`
	Link      string      `json:"link"`
	AISummary string      `json:"aiSummary"`
	Lang      string      `json:"lang"`
}

type alertSourcesResponse struct {
	Sources *[]alertSourceRecord `json:"sources"`
}

type alertSourceRecord struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
	URL    string `json:"url"`
}

type digestResponse struct {
	Digest *digestRecord `json:"digest"`
}

type digestRecord struct {
	Profile     string          `json:"profile"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle"`
	GeneratedAt string          `json:"generated_at"`
	Intro       string          `json:"intro"`
	Articles    []articleRecord `json:"articles"`
	Outro       string          `json:"outro"`
}
