// Package digest turns a profile's selected items into a newsletter document.
package digest

import (
	"strconv"
	"strings"
	"time"

	"media_watch/internal/domain"
)

const (
	Subtitle = "La lettre professionnelle des médias et du divertissement"
	Outro    = "Bonne lecture,\nLa rédaction "
)

// editorialIntros is keyed by profile name. {count} is replaced by the
// number of selected items.
var editorialIntros = map[string]string{
	"Audiovisuel": "Cette semaine dans l'audiovisuel, les lignes bougent. Entre reconfigurations stratégiques et nouveaux rapports de force, le secteur poursuit sa mue à grande vitesse. Tour d'horizon des {count} actualités à retenir.",
	"Cinéma":      "Le septième art ne connaît pas de répit. Des salles obscures aux plateformes, en passant par les festivals, l'actualité cinéma de cette semaine confirme les tendances de fond du marché. Décryptage en {count} points clés.",
	"Producteur":  "Côté production, la semaine écoulée aura été riche en annonces. Nouveaux projets, deals stratégiques et repositionnements : voici ce qu'il faut retenir pour garder une longueur d'avance.",
	"Diffuseur":   "Dans un paysage de la diffusion en pleine recomposition, les acteurs multiplient les initiatives. Droits, grilles, stratégies numériques : le point sur les mouvements qui façonnent le marché.",
	"Annonceur":   "Le marché publicitaire poursuit sa transformation. Entre nouveaux formats, arbitrages budgétaires et innovations créatives, voici les tendances qui dessinent le paysage pub de demain.",
	"Financier":   "Les marchés ont parlé cette semaine. Valorisations, opérations capitalistiques et résultats trimestriels : l'essentiel de l'actualité financière du secteur médias-entertainment.",
}

const genericIntro = "L'essentiel de l'actualité {name} de la semaine, sélectionné par la rédaction {brand}."

// Assembler builds digests. It performs no I/O.
type Assembler struct {
	brand string
}

func NewAssembler(brand string) *Assembler {
	return &Assembler{brand: brand}
}

// Assemble is deterministic for fixed inputs. Items keep the order chosen by
// the matcher.
func (a *Assembler) Assemble(profile domain.Profile, items []domain.ContentItem, now time.Time) domain.Digest {
	name := profile.Name
	if name == "" {
		name = profile.ID
	}

	out := make([]domain.ContentItem, len(items))
	copy(out, items)

	return domain.Digest{
		ProfileID:   profile.ID,
		Title:       strings.ToUpper(a.brand) + " | " + strings.ToUpper(name),
		Subtitle:    Subtitle,
		GeneratedAt: now,
		Intro:       a.Intro(name, len(items)),
		Items:       out,
		Outro:       Outro + a.brand,
	}
}

// Intro returns the editorial introduction for a profile name.
func (a *Assembler) Intro(profileName string, count int) string {
	tpl, ok := editorialIntros[profileName]
	if !ok {
		tpl = genericIntro
	}
	return strings.NewReplacer(
		"{count}", strconv.Itoa(count),
		"{name}", strings.ToLower(profileName),
		"{brand}", a.brand,
	).Replace(tpl)
}
