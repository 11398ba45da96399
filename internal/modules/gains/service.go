package gains

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/domain"
)

// Service computes portfolio-level capital gains across one or many stocks
// services. Each request is a stateless pipeline: resolve the selector, fetch
// and concatenate positions, filter by share bounds, price each distinct
// symbol, fold.
type Service struct {
	upstreams []Upstream
	positions PositionLister
	prices    domain.PriceProvider
	log       zerolog.Logger
}

// NewService creates a new capital-gains service
func NewService(upstreams []Upstream, positions PositionLister, prices domain.PriceProvider, log zerolog.Logger) *Service {
	return &Service{
		upstreams: upstreams,
		positions: positions,
		prices:    prices,
		log:       log.With().Str("service", "gains").Logger(),
	}
}

// CapitalGains returns the summed capital gain over every position matching
// the selector and share bounds, rounded to 2 fractional digits.
//
// Failure policy: an unreachable upstream contributes zero positions
// (degrade-to-empty), but any price-oracle failure aborts the whole
// aggregation — a partial total would be silently wrong.
func (s *Service) CapitalGains(ctx context.Context, selector string, bounds ShareBounds) (float64, error) {
	positions, err := s.collect(ctx, selector)
	if err != nil {
		return 0, err
	}

	filtered := bounds.Apply(positions)
	s.log.Debug().
		Str("portfolio", selector).
		Int("positions", len(positions)).
		Int("filtered", len(filtered)).
		Msg("Aggregating capital gains")

	// One oracle call per distinct symbol; the memo lives only for this
	// request, so prices are never reused across aggregations.
	total := decimal.Zero
	priceBySymbol := make(map[string]decimal.Decimal)
	for _, stock := range filtered {
		symbol := domain.NormalizeSymbol(stock.Symbol)
		price, ok := priceBySymbol[symbol]
		if !ok {
			fetched, err := s.prices.Price(ctx, symbol)
			if err != nil {
				return 0, fmt.Errorf("failed to fetch price for %s: %w", symbol, err)
			}
			price = decimal.NewFromFloat(fetched)
			priceBySymbol[symbol] = price
		}

		gain := price.
			Sub(decimal.NewFromFloat(stock.PurchasePrice)).
			Mul(decimal.NewFromInt(int64(stock.Shares)))
		total = total.Add(gain)
	}

	return total.Round(2).InexactFloat64(), nil
}

// collect gathers positions from every upstream the selector resolves to,
// preserving per-upstream order. A failing upstream is degraded to an empty
// contribution rather than failing the aggregation.
func (s *Service) collect(ctx context.Context, selector string) ([]domain.Stock, error) {
	var all []domain.Stock
	for _, upstream := range Resolve(selector, s.upstreams) {
		list, err := s.positions.List(ctx, upstream.BaseURL)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("tag", upstream.Tag).
				Str("base_url", upstream.BaseURL).
				Msg("Upstream unavailable, contributing no positions")
			continue
		}
		all = append(all, list...)
	}
	return all, nil
}
