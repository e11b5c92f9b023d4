package models

import "github.com/shopspring/decimal"

// GasReading is one set of fee tiers in gwei.
type GasReading struct {
	Fast     decimal.Decimal `json:"fast"`
	Standard decimal.Decimal `json:"standard"`
	Slow     decimal.Decimal `json:"slow"`
	Source   string          `json:"source"`
}
