package stocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/stockfolio/internal/domain"
)

// StockValue is the live valuation of a single position
type StockValue struct {
	Symbol string  `json:"symbol"`
	Ticker float64 `json:"ticker"`
	Value  float64 `json:"stock value"`
}

// PortfolioValue is the live valuation of the whole store
type PortfolioValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"portfolio value"`
}

// ValuationService derives live valuations from stored positions and the
// price oracle. It holds no state between calls.
type ValuationService struct {
	repo   *Repository
	prices domain.PriceProvider
	log    zerolog.Logger
}

// NewValuationService creates a new valuation service
func NewValuationService(repo *Repository, prices domain.PriceProvider, log zerolog.Logger) *ValuationService {
	return &ValuationService{
		repo:   repo,
		prices: prices,
		log:    log.With().Str("service", "valuation").Logger(),
	}
}

// StockValue returns the current value of one position.
// Returns ErrNotFound for an unknown ID; any oracle failure is fatal.
func (s *ValuationService) StockValue(ctx context.Context, id string) (StockValue, error) {
	stock, err := s.repo.Get(id)
	if err != nil {
		return StockValue{}, err
	}

	price, err := s.prices.Price(ctx, stock.Symbol)
	if err != nil {
		return StockValue{}, fmt.Errorf("failed to fetch price for %s: %w", stock.Symbol, err)
	}

	value := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(stock.Shares)))
	return StockValue{
		Symbol: stock.Symbol,
		Ticker: domain.Round2(price),
		Value:  value.Round(2).InexactFloat64(),
	}, nil
}

// PortfolioValue returns the summed current value of every stored position.
// Fail-fast: a single oracle failure aborts the whole valuation, since a
// partial total would be silently wrong.
func (s *ValuationService) PortfolioValue(ctx context.Context) (PortfolioValue, error) {
	stocks, err := s.repo.List()
	if err != nil {
		return PortfolioValue{}, err
	}

	total := decimal.Zero
	for _, stock := range stocks {
		price, err := s.prices.Price(ctx, stock.Symbol)
		if err != nil {
			return PortfolioValue{}, fmt.Errorf("failed to fetch price for %s: %w", stock.Symbol, err)
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(stock.Shares))))
	}

	s.log.Debug().Int("positions", len(stocks)).Str("total", total.String()).Msg("Computed portfolio value")

	return PortfolioValue{
		Date:  time.Now().Format("02-01-2006"),
		Value: total.Round(2).InexactFloat64(),
	}, nil
}
