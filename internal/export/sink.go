// Package export serializes digests to plain text and hands them to save
// collaborators.
package export

import (
	"fmt"
	"strings"
	"time"

	"media_watch/internal/digest"
	"media_watch/internal/domain"
)

const ruleWidth = 64

var rule = strings.Repeat("━", ruleWidth)

// File is a rendered digest ready to be written somewhere.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Sink renders digests. It has no side effects.
type Sink struct {
	brand string
	now   func() time.Time
}

func NewSink(brand string) *Sink {
	return &Sink{brand: brand, now: time.Now}
}

// WithClock replaces the clock used for file names.
func (s *Sink) WithClock(now func() time.Time) *Sink {
	s.now = now
	return s
}

// Render returns the plain-text newsletter.
func (s *Sink) Render(d *domain.Digest) string {
	var b strings.Builder

	subtitle := d.Subtitle
	if subtitle == "" {
		subtitle = digest.Subtitle
	}

	b.WriteString(rule + "\n")
	b.WriteString(d.Title + "\n")
	b.WriteString(subtitle + "\n")
	b.WriteString(digest.FrenchDate(d.GeneratedAt) + "\n")
	b.WriteString(rule + "\n\n")
	b.WriteString(d.Intro + "\n\n")

	for _, it := range d.Items {
		b.WriteString(rule + "\n\n")
		fmt.Fprintf(&b, "▸ %s\n", it.Title)
		fmt.Fprintf(&b, "  Source : %s\n\n", it.Source)
		b.WriteString(it.Summary + "\n\n")
		fmt.Fprintf(&b, "  → Lire l'article : %s\n\n", it.Link)
	}

	b.WriteString(rule + "\n\n")
	b.WriteString(d.Outro + "\n\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "© %s %d - Tous droits réservés\n", s.brand, d.GeneratedAt.Year())
	b.WriteString("Se désabonner | Gérer mes préférences\n")

	return b.String()
}

// FileName derives the export name from the profile id and the current UTC
// date.
func (s *Sink) FileName(d *domain.Digest) string {
	return fmt.Sprintf("newsletter-%s-%s.txt", d.ProfileID, s.now().UTC().Format(time.DateOnly))
}

// Export renders the digest into a file.
func (s *Sink) Export(d *domain.Digest) File {
	return File{
		Name:        s.FileName(d),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(s.Render(d)),
	}
}
