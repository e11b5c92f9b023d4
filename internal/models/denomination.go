package models

const (
	SymbolETH = "ETH"
	SymbolBTC = "BTC"
)

// Denomination selects the unit a quote is displayed in.
type Denomination int

const (
	Native Denomination = iota // USD
	RefA                       // priced in ETH
	RefB                       // priced in BTC
)

// References lists the cross-rate denominations in rotation order.
var References = []Denomination{RefA, RefB}

// Next returns the following denomination in the fixed cycle Native -> RefA -> RefB -> Native.
func (d Denomination) Next() Denomination {
	switch d {
	case Native:
		return RefA
	case RefA:
		return RefB
	default:
		return Native
	}
}

// Unit is the currency sign prefixed to the displayed price.
func (d Denomination) Unit() string {
	switch d {
	case RefA:
		return "Ξ"
	case RefB:
		return "₿"
	default:
		return "$"
	}
}

// RefSymbol is the reference asset ticker, empty for Native.
func (d Denomination) RefSymbol() string {
	switch d {
	case RefA:
		return SymbolETH
	case RefB:
		return SymbolBTC
	default:
		return ""
	}
}

func (d Denomination) String() string {
	switch d {
	case RefA:
		return "eth"
	case RefB:
		return "btc"
	default:
		return "usd"
	}
}

func (d Denomination) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
