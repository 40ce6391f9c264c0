package config

import "media_watch/internal/domain"

// DefaultProfiles returns the newsletter segments used when the config file
// declares none.
func DefaultProfiles() []domain.Profile {
	return []domain.Profile{
		{
			ID:             "audiovisuel",
			Name:           "Audiovisuel",
			Keywords:       []string{"tv", "television", "audience", "channel", "broadcast", "streaming", "netflix", "disney", "hbo", "amazon"},
			RecipientCount: 456,
		},
		{
			ID:             "cinema",
			Name:           "Cinéma",
			Keywords:       []string{"film", "movie", "box office", "cinema", "theatrical", "release", "premiere", "festival", "oscar", "cannes"},
			RecipientCount: 234,
		},
		{
			ID:             "producteur",
			Name:           "Producteur",
			Keywords:       []string{"production", "studio", "producer", "deal", "greenlight", "series", "show"},
			RecipientCount: 189,
		},
		{
			ID:             "diffuseur",
			Name:           "Diffuseur",
			Keywords:       []string{"broadcast", "network", "channel", "distribution", "rights", "license"},
			RecipientCount: 167,
		},
		{
			ID:             "annonceur",
			Name:           "Annonceur",
			Keywords:       []string{"advertising", "ad", "sponsor", "brand", "marketing", "commercial"},
			RecipientCount: 145,
		},
		{
			ID:             "financier",
			Name:           "Financier",
			Keywords:       []string{"stock", "revenue", "earnings", "acquisition", "merger", "investment", "valuation", "ipo"},
			RecipientCount: 98,
		},
	}
}
