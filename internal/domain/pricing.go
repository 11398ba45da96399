package domain

import "context"

// PriceProvider returns the current market price for a ticker symbol.
// Prices are transient: implementations must not cache across requests.
type PriceProvider interface {
	Price(ctx context.Context, symbol string) (float64, error)
}
