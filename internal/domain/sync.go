package domain

import "time"

// SyncStats holds statistics about one source fetch.
type SyncStats struct {
	SourceID string
	Kind     SourceKind
	Fetched  int
	Corpus   int
	Origin   Origin
	Duration time.Duration
}
