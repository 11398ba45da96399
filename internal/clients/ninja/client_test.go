package ninja

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(url, "test-key", 2*time.Second, zerolog.Nop())
}

func TestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stockprice", r.URL.Path)
		assert.Equal(t, "NVDA", r.URL.Query().Get("ticker"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ticker": "NVDA", "price": 140.00}`))
	}))
	defer srv.Close()

	price, err := newTestClient(srv.URL).Price(context.Background(), "nvda")
	require.NoError(t, err)
	assert.Equal(t, 140.00, price)
}

func TestPriceNormalizesQuotedSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GOOG", r.URL.Query().Get("ticker"))
		_, _ = w.Write([]byte(`{"price": 150.0}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Price(context.Background(), `"goog"`)
	require.NoError(t, err)
}

func TestPriceNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Price(context.Background(), "NVDA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestPriceMissingFieldIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ticker": "NVDA"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Price(context.Background(), "NVDA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price missing")
}

func TestPriceUnreachableIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Price(context.Background(), "NVDA")
	require.Error(t, err)
}
