// Package source holds the normalization rules shared by every adapter.
package source

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"media_watch/internal/domain"
)

// MaxSummaryRunes is the summary length kept before an ellipsis is appended.
const MaxSummaryRunes = 350

var (
	tagPattern   = regexp.MustCompile(`<[^<]+?>`)
	spacePattern = regexp.MustCompile(`\s+`)

	highPriority   = []string{"acquisition", "merger", "deal", "exclusive", "record", "breaking"}
	mediumPriority = []string{"announce", "launch", "premiere", "release", "revenue", "earnings"}

	groupPrinter = message.NewPrinter(language.English)
)

// StripHTML removes markup and entities and collapses whitespace.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// TruncateSummary cuts s to MaxSummaryRunes runes and appends "..." when it
// was longer.
func TruncateSummary(s string) string {
	r := []rune(s)
	if len(r) <= MaxSummaryRunes {
		return s
	}
	return string(r[:MaxSummaryRunes]) + "..."
}

// CleanSummary is StripHTML followed by TruncateSummary.
func CleanSummary(s string) string {
	return TruncateSummary(StripHTML(s))
}

// ClassifyPriority ranks an item by the deal and launch vocabulary found in
// its title and summary.
func ClassifyPriority(title, summary string) domain.Priority {
	text := strings.ToLower(title + " " + summary)
	if containsAny(text, highPriority) {
		return domain.PriorityHigh
	}
	if containsAny(text, mediumPriority) {
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}

// ParsePriority accepts a priority label from upstream, classifying the text
// when the label is missing or unknown.
func ParsePriority(label, title, summary string) domain.Priority {
	switch p := domain.Priority(strings.ToLower(label)); p {
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		return p
	}
	return ClassifyPriority(title, summary)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// FormatMarketCap renders a capitalization with a T/B/M suffix and the
// currency symbol ($ for USD, € otherwise).
func FormatMarketCap(value int64, currency string) string {
	if value <= 0 {
		return "N/A"
	}

	symbol := "€"
	if currency == "USD" {
		symbol = "$"
	}

	v := float64(value)
	switch {
	case value >= 1_000_000_000_000:
		return fmt.Sprintf("%.1fT %s", v/1e12, symbol)
	case value >= 1_000_000_000:
		return fmt.Sprintf("%.1fB %s", v/1e9, symbol)
	case value >= 1_000_000:
		return fmt.Sprintf("%.0fM %s", v/1e6, symbol)
	}
	return groupPrinter.Sprintf("%d %s", value, symbol)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
	time.DateOnly,
}

// ParseTime reads the timestamp formats seen in feeds and the backend.
// Timestamps without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
