package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_watch/internal/domain"
)

var monday = time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)

func TestAssemble_KnownProfile(t *testing.T) {
	a := NewAssembler("Satellifacts")
	items := []domain.ContentItem{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}, {ID: "3", Title: "C"}}

	d := a.Assemble(domain.Profile{ID: "audiovisuel", Name: "Audiovisuel"}, items, monday)

	assert.Equal(t, "audiovisuel", d.ProfileID)
	assert.Equal(t, "SATELLIFACTS | AUDIOVISUEL", d.Title)
	assert.Equal(t, Subtitle, d.Subtitle)
	assert.Equal(t, monday, d.GeneratedAt)
	assert.Contains(t, d.Intro, "Tour d'horizon des 3 actualités à retenir.")
	assert.Equal(t, "Bonne lecture,\nLa rédaction Satellifacts", d.Outro)
	require.Len(t, d.Items, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{d.Items[0].ID, d.Items[1].ID, d.Items[2].ID})
}

func TestAssemble_AccentedProfileName(t *testing.T) {
	a := NewAssembler("Satellifacts")
	d := a.Assemble(domain.Profile{ID: "cinema", Name: "Cinéma"}, make([]domain.ContentItem, 5), monday)

	assert.Equal(t, "SATELLIFACTS | CINÉMA", d.Title)
	assert.Contains(t, d.Intro, "Décryptage en 5 points clés.")
}

func TestAssemble_UnknownProfileUsesGenericIntro(t *testing.T) {
	a := NewAssembler("Satellifacts")
	d := a.Assemble(domain.Profile{ID: "sport", Name: "Sport"}, nil, monday)

	assert.Equal(t, "L'essentiel de l'actualité sport de la semaine, sélectionné par la rédaction Satellifacts.", d.Intro)
	assert.Empty(t, d.Items)
}

func TestAssemble_IsDeterministic(t *testing.T) {
	a := NewAssembler("Satellifacts")
	p := domain.Profile{ID: "financier", Name: "Financier"}
	items := []domain.ContentItem{{ID: "1"}}

	assert.Equal(t, a.Assemble(p, items, monday), a.Assemble(p, items, monday))
}

func TestAssemble_CopiesItems(t *testing.T) {
	a := NewAssembler("Satellifacts")
	items := []domain.ContentItem{{ID: "1", Title: "original"}}
	d := a.Assemble(domain.Profile{ID: "x"}, items, monday)

	items[0].Title = "mutated"
	assert.Equal(t, "original", d.Items[0].Title)
}

func TestFrenchDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{monday, "Lundi 5 janvier 2026"},
		{time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "Samedi 15 août 2026"},
		{time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), "Dimanche 18 octobre 2026"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FrenchDate(tt.in))
	}
}
