package gains

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockfolio/internal/domain"
)

// stubLister serves canned position lists keyed by upstream base URL
type stubLister struct {
	lists map[string][]domain.Stock
	errs  map[string]error
}

func (s *stubLister) List(ctx context.Context, baseURL string) ([]domain.Stock, error) {
	if err := s.errs[baseURL]; err != nil {
		return nil, err
	}
	return s.lists[baseURL], nil
}

// stubPrices is an in-memory PriceProvider counting oracle calls
type stubPrices struct {
	prices map[string]float64
	err    error
	calls  int
}

func (s *stubPrices) Price(ctx context.Context, symbol string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	price, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no price for %s", symbol)
	}
	return price, nil
}

var testUpstreams = []Upstream{
	{Tag: "stocks1", BaseURL: "http://stocks1:8000"},
	{Tag: "stocks2", BaseURL: "http://stocks2:8000"},
}

func scenarioPositions() []domain.Stock {
	return []domain.Stock{
		{ID: "1", Symbol: "NVDA", PurchasePrice: 134.66, Shares: 7},
		{ID: "2", Symbol: "AAPL", PurchasePrice: 183.63, Shares: 19},
		{ID: "3", Symbol: "GOOG", PurchasePrice: 140.12, Shares: 14},
	}
}

func scenarioPrices() *stubPrices {
	return &stubPrices{prices: map[string]float64{
		"NVDA": 140.00,
		"AAPL": 190.00,
		"GOOG": 150.00,
	}}
}

func newTestService(lister PositionLister, prices domain.PriceProvider) *Service {
	return NewService(testUpstreams, lister, prices, zerolog.Nop())
}

func TestCapitalGainsSinglePortfolio(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": scenarioPositions(),
	}}
	svc := newTestService(lister, scenarioPrices())

	total, err := svc.CapitalGains(context.Background(), "stocks1", ShareBounds{})
	require.NoError(t, err)

	// (140-134.66)*7 + (190-183.63)*19 + (150-140.12)*14
	assert.Equal(t, 296.73, total)
}

func TestCapitalGainsAcrossAllPortfolios(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": scenarioPositions(),
		"http://stocks2:8000": {
			{ID: "4", Symbol: "MSFT", PurchasePrice: 100.00, Shares: 2},
		},
	}}
	prices := scenarioPrices()
	prices.prices["MSFT"] = 110.00
	svc := newTestService(lister, prices)

	total, err := svc.CapitalGains(context.Background(), "", ShareBounds{})
	require.NoError(t, err)
	assert.Equal(t, 316.73, total)
}

func TestCapitalGainsShareFilter(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": scenarioPositions(),
	}}
	svc := newTestService(lister, scenarioPrices())

	gt := 10
	total, err := svc.CapitalGains(context.Background(), "stocks1", ShareBounds{GreaterThan: &gt})
	require.NoError(t, err)

	// NVDA(7 shares) excluded: (190-183.63)*19 + (150-140.12)*14
	assert.Equal(t, 259.35, total)
}

func TestCapitalGainsNegativeTotal(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": {
			{ID: "1", Symbol: "NVDA", PurchasePrice: 150.00, Shares: 10},
		},
	}}
	svc := newTestService(lister, scenarioPrices())

	total, err := svc.CapitalGains(context.Background(), "stocks1", ShareBounds{})
	require.NoError(t, err)
	assert.Equal(t, -100.00, total, "losses carry their sign")
}

func TestCapitalGainsUnknownPortfolio(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": scenarioPositions(),
	}}
	prices := scenarioPrices()
	svc := newTestService(lister, prices)

	total, err := svc.CapitalGains(context.Background(), "bonds", ShareBounds{})
	require.NoError(t, err, "unknown portfolio yields zero, not an error")
	assert.Equal(t, 0.00, total)
	assert.Zero(t, prices.calls, "nothing to price")
}

func TestCapitalGainsDegradesOnUpstreamFailure(t *testing.T) {
	lister := &stubLister{
		lists: map[string][]domain.Stock{
			"http://stocks1:8000": scenarioPositions(),
		},
		errs: map[string]error{
			"http://stocks2:8000": errors.New("connection refused"),
		},
	}
	svc := newTestService(lister, scenarioPrices())

	total, err := svc.CapitalGains(context.Background(), "", ShareBounds{})
	require.NoError(t, err, "an unreachable upstream contributes no positions")
	assert.Equal(t, 296.73, total)
}

func TestCapitalGainsFailFastOnOracleFailure(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": scenarioPositions(),
	}}
	prices := scenarioPrices()
	delete(prices.prices, "AAPL")
	svc := newTestService(lister, prices)

	_, err := svc.CapitalGains(context.Background(), "stocks1", ShareBounds{})
	require.Error(t, err, "a single price failure aborts the aggregation")
	assert.Contains(t, err.Error(), "AAPL")
}

func TestCapitalGainsPricesEachSymbolOnce(t *testing.T) {
	// AAPL appears in both stores; the oracle must still be called once per
	// distinct symbol within a single aggregation.
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": {
			{ID: "1", Symbol: "AAPL", PurchasePrice: 180.00, Shares: 5},
			{ID: "2", Symbol: "NVDA", PurchasePrice: 130.00, Shares: 3},
		},
		"http://stocks2:8000": {
			{ID: "3", Symbol: "aapl", PurchasePrice: 185.00, Shares: 2},
		},
	}}
	prices := scenarioPrices()
	svc := newTestService(lister, prices)

	total, err := svc.CapitalGains(context.Background(), "", ShareBounds{})
	require.NoError(t, err)
	assert.Equal(t, 2, prices.calls, "one oracle call per distinct symbol")

	// (190-180)*5 + (140-130)*3 + (190-185)*2
	assert.Equal(t, 90.00, total)
}

func TestCapitalGainsOrderIndependent(t *testing.T) {
	positions := scenarioPositions()
	reversed := []domain.Stock{positions[2], positions[1], positions[0]}

	forward := newTestService(&stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": positions,
	}}, scenarioPrices())
	backward := newTestService(&stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": reversed,
	}}, scenarioPrices())

	a, err := forward.CapitalGains(context.Background(), "stocks1", ShareBounds{})
	require.NoError(t, err)
	b, err := backward.CapitalGains(context.Background(), "stocks1", ShareBounds{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCapitalGainsEmptyFilteredSet(t *testing.T) {
	lister := &stubLister{lists: map[string][]domain.Stock{
		"http://stocks1:8000": scenarioPositions(),
	}}
	prices := scenarioPrices()
	svc := newTestService(lister, prices)

	gt := 100
	total, err := svc.CapitalGains(context.Background(), "stocks1", ShareBounds{GreaterThan: &gt})
	require.NoError(t, err)
	assert.Equal(t, 0.00, total)
	assert.Zero(t, prices.calls)
}
