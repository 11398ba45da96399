package stocks

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/stockfolio/internal/database"
	"github.com/aristath/stockfolio/internal/domain"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(database.Schema)
	require.NoError(t, err)

	return NewRepository(db, zerolog.Nop())
}

func TestInsertNormalizesAndDefaults(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.Insert(domain.Stock{
		Symbol:        "nvda",
		PurchasePrice: 134.656,
		Shares:        7,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stock, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "NVDA", stock.Symbol)
	assert.Equal(t, 134.66, stock.PurchasePrice, "purchase price rounds to 2 digits on write")
	assert.Equal(t, "NA", stock.Name)
	assert.Equal(t, "NA", stock.PurchaseDate)
	assert.Equal(t, 7, stock.Shares)
}

func TestInsertDuplicateSymbol(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Insert(domain.Stock{Symbol: "AAPL", PurchasePrice: 183.63, Shares: 19})
	require.NoError(t, err)

	// Case-insensitive duplicate: symbols are normalized before storage
	_, err = repo.Insert(domain.Stock{Symbol: "aapl", PurchasePrice: 100, Shares: 1})
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)

	for _, symbol := range []string{"NVDA", "AAPL", "GOOG"} {
		_, err := repo.Insert(domain.Stock{Symbol: symbol, PurchasePrice: 1, Shares: 1})
		require.NoError(t, err)
	}

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "NVDA", list[0].Symbol)
	assert.Equal(t, "AAPL", list[1].Symbol)
	assert.Equal(t, "GOOG", list[2].Symbol)
}

func TestGetUnknownID(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.Insert(domain.Stock{Symbol: "NVDA", PurchasePrice: 134.66, Shares: 7})
	require.NoError(t, err)

	err = repo.Update(id, domain.Stock{
		Name:          "NVIDIA Corp",
		Symbol:        "nvda",
		PurchasePrice: 140.005,
		PurchaseDate:  "01-01-2025",
		Shares:        10,
	})
	require.NoError(t, err)

	stock, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "NVDA", stock.Symbol)
	assert.Equal(t, 140.01, stock.PurchasePrice)
	assert.Equal(t, "NVIDIA Corp", stock.Name)
	assert.Equal(t, 10, stock.Shares)
}

func TestUpdateUnknownID(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Update("no-such-id", domain.Stock{Symbol: "NVDA", PurchasePrice: 1, Shares: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDuplicateSymbol(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Insert(domain.Stock{Symbol: "NVDA", PurchasePrice: 1, Shares: 1})
	require.NoError(t, err)
	id, err := repo.Insert(domain.Stock{Symbol: "AAPL", PurchasePrice: 1, Shares: 1})
	require.NoError(t, err)

	err = repo.Update(id, domain.Stock{Symbol: "NVDA", PurchasePrice: 1, Shares: 1})
	assert.ErrorIs(t, err, ErrDuplicateSymbol)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)

	id, err := repo.Insert(domain.Stock{Symbol: "NVDA", PurchasePrice: 1, Shares: 1})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(id))

	_, err = repo.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(id), ErrNotFound)
}
