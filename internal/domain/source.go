package domain

import "time"

type SourceKind string

const (
	KindQuotes    SourceKind = "quotes"
	KindBoxOffice SourceKind = "boxoffice"
	KindAudiences SourceKind = "audiences"
	KindNews      SourceKind = "news"
	KindAlerts    SourceKind = "alerts"
	KindRSS       SourceKind = "rss"
)

// FeedsContent reports whether sources of this kind feed the article corpus
// rather than a tabular snapshot.
func (k SourceKind) FeedsContent() bool {
	switch k {
	case KindNews, KindAlerts, KindRSS:
		return true
	}
	return false
}

func (k SourceKind) Valid() bool {
	switch k {
	case KindQuotes, KindBoxOffice, KindAudiences, KindNews, KindAlerts, KindRSS:
		return true
	}
	return false
}

// Source is a configured external feed.
type Source struct {
	ID           string
	Kind         SourceKind
	Endpoint     string
	PollInterval time.Duration
}

// FetchState is the freshness of one source. It is replaced as a whole after
// every fetch attempt; a zero LastUpdatedAt means the source never succeeded.
type FetchState struct {
	Live          bool      `json:"live"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	LastError     string    `json:"last_error,omitempty"`
	Reason        string    `json:"reason,omitempty"`
}

// Origin describes where served data came from.
type Origin string

const (
	OriginLive  Origin = "live"
	OriginCache Origin = "cache"
	OriginSeed  Origin = "seed"
	OriginNone  Origin = "none"
)
