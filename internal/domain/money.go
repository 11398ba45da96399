package domain

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to 2 fractional digits (half away from zero).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
