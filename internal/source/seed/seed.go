// Package seed holds the demo datasets installed for tabular sources that
// have never produced a live fetch.
package seed

import (
	"media_watch/internal/domain"
	"media_watch/internal/source"
)

// For returns a fresh copy of the seed batch for a source, or false when the
// kind has no seed. Content kinds never seed the corpus.
func For(sourceID string, kind domain.SourceKind) (*domain.Batch, bool) {
	batch := &domain.Batch{SourceID: sourceID, Kind: kind}

	switch kind {
	case domain.KindQuotes:
		batch.Quotes = quotes()
	case domain.KindBoxOffice:
		batch.Rows = boxOfficeFrance()
	case domain.KindAudiences:
		batch.Rows = audiences()
	default:
		return nil, false
	}
	return batch, true
}

type stock struct {
	ticker, name, sector, currency string
	price, change                  float64
	marketCap                      int64
}

var mediaStocks = []stock{
	{"VIV.PA", "Vivendi", "Médias", "EUR", 2.36, 0.5, 2_360_000_000},
	{"TFI.PA", "TF1", "TV", "EUR", 8.14, -0.3, 1_710_000_000},
	{"MMT.PA", "M6 Métropole", "TV", "EUR", 11.88, 0.8, 1_500_000_000},
	{"PUB.PA", "Publicis", "Publicité", "EUR", 87.08, 1.2, 21_770_000_000},
	{"NFLX", "Netflix", "Streaming", "USD", 900.50, 2.1, 387_000_000_000},
	{"DIS", "Disney", "Entertainment", "USD", 112.30, -0.5, 202_000_000_000},
	{"WBD", "Warner Bros Discovery", "Entertainment", "USD", 11.85, 1.5, 28_440_000_000},
	{"PARA", "Paramount", "Entertainment", "USD", 11.20, -1.2, 7_280_000_000},
}

func quotes() []domain.Quote {
	out := make([]domain.Quote, 0, len(mediaStocks))
	for _, s := range mediaStocks {
		out = append(out, domain.Quote{
			Ticker:         s.ticker,
			Name:           s.name,
			Sector:         s.sector,
			Price:          s.price,
			ChangePct:      s.change,
			Currency:       s.currency,
			MarketCap:      s.marketCap,
			MarketCapLabel: source.FormatMarketCap(s.marketCap, s.currency),
		})
	}
	return out
}

func boxOfficeFrance() []domain.TableRow {
	row := func(rank int, film, distributor string, week, total, entries float64, weeks int) domain.TableRow {
		return domain.TableRow{
			Rank:        rank,
			Title:       film,
			Distributor: distributor,
			Values:      map[string]float64{"weekRevenue": week, "totalRevenue": total, "entries": entries},
			Weeks:       weeks,
		}
	}
	return []domain.TableRow{
		row(1, "Mufasa: Le Roi Lion", "Disney", 5_850_000, 42_300_000, 680_000, 4),
		row(2, "Sonic 3, le film", "Paramount", 4_200_000, 28_500_000, 520_000, 3),
		row(3, "Vaiana 2", "Disney", 2_890_000, 85_200_000, 380_000, 7),
		row(4, "Nosferatu", "Universal", 2_450_000, 8_900_000, 290_000, 2),
		row(5, "Kraven the Hunter", "Sony", 1_850_000, 6_200_000, 220_000, 2),
		row(6, "Wicked", "Universal", 1_620_000, 45_800_000, 195_000, 6),
		row(7, "Un p'tit truc en plus", "Gaumont", 980_000, 112_000_000, 125_000, 32),
		row(8, "Gladiator II", "Paramount", 750_000, 52_400_000, 92_000, 8),
		row(9, "L'Amour ouf", "Pathé", 620_000, 38_500_000, 78_000, 12),
		row(10, "Le Comte de Monte-Cristo", "Pathé", 450_000, 98_700_000, 58_000, 28),
	}
}

func audiences() []domain.TableRow {
	row := func(rank int, channel, program string, viewers, share float64) domain.TableRow {
		return domain.TableRow{
			Rank:        rank,
			Title:       program,
			Distributor: channel,
			Values:      map[string]float64{"viewers": viewers, "share": share},
		}
	}
	return []domain.TableRow{
		row(1, "TF1", "JT 20H", 5_420_000, 24.8),
		row(2, "France 2", "JT 20H", 4_180_000, 19.1),
		row(3, "M6", "Capital", 2_890_000, 13.2),
		row(4, "France 3", "JT 19/20", 2_650_000, 12.1),
		row(5, "TF1", "Koh-Lanta", 4_520_000, 22.1),
	}
}
