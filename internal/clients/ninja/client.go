// Package ninja provides the api-ninjas stock price client.
package ninja

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// DefaultBaseURL is the production api-ninjas endpoint
const DefaultBaseURL = "https://api.api-ninjas.com/v1"

// Client for the api-ninjas stockprice endpoint.
// Prices are deliberately never cached: every aggregation re-fetches.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new api-ninjas client. baseURL falls back to the
// production endpoint when empty.
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "api-ninjas").Logger(),
	}
}

// Price fetches the current unit price for a ticker symbol.
// Implements domain.PriceProvider.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	symbol = domain.NormalizeSymbol(symbol)

	reqURL := fmt.Sprintf("%s/stockprice?ticker=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build price request for %s: %w", symbol, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("price request for %s failed: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("price API returned status %d for %s", resp.StatusCode, symbol)
	}

	var result struct {
		Price *float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse price response for %s: %w", symbol, err)
	}
	if result.Price == nil {
		return 0, fmt.Errorf("price missing in API response for %s", symbol)
	}

	c.log.Debug().Str("symbol", symbol).Float64("price", *result.Price).Msg("Fetched stock price")

	return *result.Price, nil
}
