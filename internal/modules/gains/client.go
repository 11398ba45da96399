package gains

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// PositionLister retrieves the full position list of one stocks service
type PositionLister interface {
	List(ctx context.Context, baseURL string) ([]domain.Stock, error)
}

// StocksClient is the HTTP client for stocks service position listings
type StocksClient struct {
	client *http.Client
	log    zerolog.Logger
}

// NewStocksClient creates a new stocks service client
func NewStocksClient(timeout time.Duration, log zerolog.Logger) *StocksClient {
	return &StocksClient{
		client: &http.Client{Timeout: timeout},
		log:    log.With().Str("client", "stocks").Logger(),
	}
}

// List fetches every position from the stocks service at baseURL.
func (c *StocksClient) List(ctx context.Context, baseURL string) ([]domain.Stock, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/stocks", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stocks request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stocks request to %s failed: %w", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stocks service %s returned status %d", baseURL, resp.StatusCode)
	}

	var stocks []domain.Stock
	if err := json.NewDecoder(resp.Body).Decode(&stocks); err != nil {
		return nil, fmt.Errorf("failed to parse stocks response from %s: %w", baseURL, err)
	}

	c.log.Debug().Str("base_url", baseURL).Int("positions", len(stocks)).Msg("Fetched positions")
	return stocks, nil
}
