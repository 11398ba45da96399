package gains

import "github.com/aristath/stockfolio/internal/domain"

// ShareBounds holds the optional strict share-count bounds. A nil side means
// no constraint on that side; a present zero is still applied.
type ShareBounds struct {
	GreaterThan *int
	LessThan    *int
}

// Apply filters positions to those satisfying every active bound. Both bounds
// are strict and combine as a conjunction; input order is preserved.
func (b ShareBounds) Apply(in []domain.Stock) []domain.Stock {
	if b.GreaterThan == nil && b.LessThan == nil {
		return in
	}

	out := make([]domain.Stock, 0, len(in))
	for _, stock := range in {
		if b.GreaterThan != nil && stock.Shares <= *b.GreaterThan {
			continue
		}
		if b.LessThan != nil && stock.Shares >= *b.LessThan {
			continue
		}
		out = append(out, stock)
	}
	return out
}
