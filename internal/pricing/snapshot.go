package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// Symbols returns the symbols one refresh cycle has to request.
// With rotation the two reference assets are added, without duplicates.
func Symbols(ticker string, rotate bool) []string {
	out := []string{ticker}
	if !rotate {
		return out
	}
	for _, d := range models.References {
		if ref := d.RefSymbol(); ref != ticker {
			out = append(out, ref)
		}
	}
	return out
}

// BuildSnapshot derives a Snapshot from one cycle's fetch result.
// A missing primary ticker yields an empty snapshot. Cross quotes are
// computed only with rotation, and only for references that were found.
func BuildSnapshot(cycleID uuid.UUID, ticker string, raw map[string]models.RawQuote, rotate bool, now time.Time) *models.Snapshot {
	ticker = strings.ToUpper(ticker)
	snap := &models.Snapshot{
		CycleID:   cycleID,
		Ticker:    ticker,
		Quotes:    make(map[string]models.Quote, len(raw)),
		FetchedAt: now,
	}
	for sym, r := range raw {
		snap.Quotes[strings.ToUpper(sym)] = Normalize(r)
	}

	primary, ok := snap.Quotes[ticker]
	if !ok {
		return snap
	}
	snap.Native = &primary

	if !rotate {
		return snap
	}
	snap.Cross = make(map[models.Denomination]models.CrossQuote, len(models.References))
	for _, d := range models.References {
		ref, ok := snap.Quotes[d.RefSymbol()]
		if !ok {
			continue
		}
		snap.Cross[d] = Cross(primary, ref, d)
	}
	return snap
}
