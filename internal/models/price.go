package models

// RawQuote is one symbol's spot record as returned by the price source.
type RawQuote struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// Arrow is the 24h trend indicator shown next to a price.
type Arrow int

const (
	ArrowFlat Arrow = iota
	ArrowUp
	ArrowDown
)

// ArrowOf maps the sign of v to an Arrow. Zero (including -0) is Flat.
func ArrowOf(v float64) Arrow {
	switch {
	case v > 0:
		return ArrowUp
	case v < 0:
		return ArrowDown
	default:
		return ArrowFlat
	}
}

func (a Arrow) String() string {
	switch a {
	case ArrowUp:
		return "(↗)"
	case ArrowDown:
		return "(↘)"
	default:
		return "(→)"
	}
}

func (a Arrow) MarshalText() ([]byte, error) {
	switch a {
	case ArrowUp:
		return []byte("up"), nil
	case ArrowDown:
		return []byte("down"), nil
	default:
		return []byte("flat"), nil
	}
}

// Quote is a USD quote derived from one RawQuote.
// PastPrice comes from the unrounded change; Change24h is display-rounded.
type Quote struct {
	CurrentPrice float64 `json:"currentPrice"`
	PastPrice    float64 `json:"pastPrice"`
	Change24h    float64 `json:"change24h"`
	Arrow        Arrow   `json:"arrow"`
}

// CrossQuote is the primary ticker priced in a reference asset.
type CrossQuote struct {
	FormattedPrice string  `json:"formattedPrice"`
	CurrentPrice   float64 `json:"currentPrice"`
	PastPrice      float64 `json:"pastPrice"`
	Change24h      float64 `json:"change24h"`
	Arrow          Arrow   `json:"arrow"`
}
