package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// SatThreshold is the BTC cross price below which the sat form is used.
const SatThreshold = 0.00001

const satsPerBTC = 1e8

// RoundChange rounds to two decimals, ties away from zero. A result of
// -0 is folded to 0.
func RoundChange(c float64) float64 {
	r := math.Round(c*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// FormatCrossPrice renders a cross price for denomination d.
// Only the BTC reference switches to whole sats, and only strictly below SatThreshold.
func FormatCrossPrice(price float64, d models.Denomination) string {
	if d == models.RefB && price < SatThreshold {
		return fmt.Sprintf("%.0fsat", math.Round(price*satsPerBTC))
	}
	return strconv.FormatFloat(price, 'f', 5, 64)
}

// Cross prices primary in ref. The change comes from the ratio of the two
// quotes' current and past prices, and the arrow from the rounded change.
func Cross(primary, ref models.Quote, d models.Denomination) models.CrossQuote {
	current := primary.CurrentPrice / ref.CurrentPrice
	past := primary.PastPrice / ref.PastPrice
	change := RoundChange((current - past) / past * 100)
	return models.CrossQuote{
		FormattedPrice: FormatCrossPrice(current, d),
		CurrentPrice:   current,
		PastPrice:      past,
		Change24h:      change,
		Arrow:          models.ArrowOf(change),
	}
}
