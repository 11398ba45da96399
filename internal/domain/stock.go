// Package domain holds the shared wire types and interfaces used by both the
// stocks service and the capital-gains service. It has no infrastructure
// dependencies.
package domain

import "strings"

// Stock is one recorded purchase lot. The JSON field names are the wire
// contract between the stocks service, its clients, and the capital-gains
// aggregator ("purchase price" and "purchase date" contain a space).
type Stock struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	PurchasePrice float64 `json:"purchase price"`
	PurchaseDate  string  `json:"purchase date"`
	Shares        int     `json:"shares"`
}

// NormalizeSymbol upper-cases a ticker symbol and strips enclosing quote
// characters that occasionally leak into stored data.
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	symbol = strings.Trim(symbol, `"'`)
	return strings.ToUpper(symbol)
}
