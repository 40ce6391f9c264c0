package domain

import "time"

// Profile is a subscriber segment curated by keyword.
type Profile struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Keywords       []string `yaml:"keywords" json:"keywords"`
	RecipientCount int      `yaml:"recipients" json:"recipient_count"`
}

// MatchResult is produced per matching run and never stored.
type MatchResult struct {
	Item    ContentItem
	Matched bool
	Rank    int
}

// Digest is the assembled document for one profile at one point in time.
type Digest struct {
	ProfileID   string        `json:"profile_id"`
	Title       string        `json:"title"`
	Subtitle    string        `json:"subtitle"`
	GeneratedAt time.Time     `json:"generated_at"`
	Intro       string        `json:"intro"`
	Items       []ContentItem `json:"items"`
	Outro       string        `json:"outro"`
}
