// Package pricing turns raw spot records into the quotes the bot displays.
package pricing

import (
	"math"

	"github.com/kjannette/sidebar-pricebot/internal/models"
)

// CeilChange rounds a 24h percentage up to two decimals.
// -0 is folded to 0 so it renders as "0".
func CeilChange(c float64) float64 {
	r := math.Ceil(c*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// PastPrice reconstructs the price 24h ago from the unrounded change.
func PastPrice(current, change float64) float64 {
	return current / ((100 + change) / 100)
}

// Normalize derives a Quote. The arrow follows the raw change, not the
// rounded one, so 0.0001 is Up even though it displays as 0.01.
func Normalize(raw models.RawQuote) models.Quote {
	return models.Quote{
		CurrentPrice: raw.USD,
		PastPrice:    PastPrice(raw.USD, raw.USD24hChange),
		Change24h:    CeilChange(raw.USD24hChange),
		Arrow:        models.ArrowOf(raw.USD24hChange),
	}
}
