package display

import (
	"strconv"
	"time"

	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// GasDenomination labels gas displays.
const GasDenomination = "gwei"

// Native renders a USD quote as "ETH $3000.5 (↗)" / "$ 24h: 1.23%".
func Native(ticker string, q models.Quote, at time.Time) models.Display {
	unit := models.Native.Unit()
	return models.Display{
		Identity:     ticker + " " + unit + strconv.FormatFloat(q.CurrentPrice, 'f', -1, 64) + " " + q.Arrow.String(),
		Status:       unit + " 24h: " + strconv.FormatFloat(q.Change24h, 'f', -1, 64) + "%",
		Ticker:       ticker,
		Denomination: models.Native.String(),
		PublishedAt:  at,
	}
}

// Cross renders a cross quote; its change always carries two decimals.
func Cross(ticker string, d models.Denomination, q models.CrossQuote, at time.Time) models.Display {
	unit := d.Unit()
	return models.Display{
		Identity:     ticker + " " + unit + q.FormattedPrice + " " + q.Arrow.String(),
		Status:       unit + " 24h: " + strconv.FormatFloat(q.Change24h, 'f', 2, 64) + "%",
		Ticker:       ticker,
		Denomination: d.String(),
		PublishedAt:  at,
	}
}

// Gas renders a fee reading as "⚡50 gwei" / "🚶30 🐢20".
func Gas(ticker string, r models.GasReading, at time.Time) models.Display {
	return models.Display{
		Identity:     "⚡" + r.Fast.String() + " gwei",
		Status:       "🚶" + r.Standard.String() + " 🐢" + r.Slow.String(),
		Ticker:       ticker,
		Denomination: GasDenomination,
		PublishedAt:  at,
	}
}

// Resolve picks the payload for d out of snap. It reports false when the
// snapshot has nothing to show for d.
func Resolve(snap *models.Snapshot, d models.Denomination, at time.Time) (models.Display, bool) {
	if snap.Empty() {
		return models.Display{}, false
	}
	switch d {
	case models.Native:
		return Native(snap.Ticker, *snap.Native, at), true
	case models.RefA, models.RefB:
		q, ok := snap.Cross[d]
		if !ok {
			return models.Display{}, false
		}
		return Cross(snap.Ticker, d, q, at), true
	default:
		return models.Display{}, false
	}
}
