// Package stocks provides the persisted position store and valuation logic
// for the stocks service.
package stocks

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	// ErrNotFound is returned when no position exists for the given ID.
	ErrNotFound = errors.New("stock not found")
	// ErrDuplicateSymbol is returned when a write would violate the
	// one-position-per-symbol invariant.
	ErrDuplicateSymbol = errors.New("stock symbol already exists")
)

// Repository handles position storage in the stocks database.
// Symbols are normalized to upper case and purchase prices rounded to
// 2 fractional digits before they hit the table.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new stocks repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "stocks").Logger(),
	}
}

// Insert stores a new position and returns its store-assigned ID.
func (r *Repository) Insert(stock domain.Stock) (string, error) {
	stock = normalize(stock)
	stock.ID = uuid.NewString()
	now := time.Now().Unix()

	_, err := r.db.Exec(`
		INSERT INTO stocks (id, name, symbol, purchase_price, purchase_date, shares, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, stock.ID, stock.Name, stock.Symbol, stock.PurchasePrice, stock.PurchaseDate, stock.Shares, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicateSymbol
		}
		return "", fmt.Errorf("failed to insert stock %s: %w", stock.Symbol, err)
	}

	r.log.Debug().Str("id", stock.ID).Str("symbol", stock.Symbol).Msg("Inserted stock")
	return stock.ID, nil
}

// List returns all positions in insertion order.
func (r *Repository) List() ([]domain.Stock, error) {
	rows, err := r.db.Query(`
		SELECT id, name, symbol, purchase_price, purchase_date, shares
		FROM stocks ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	defer rows.Close()

	stocks := make([]domain.Stock, 0)
	for rows.Next() {
		var s domain.Stock
		if err := rows.Scan(&s.ID, &s.Name, &s.Symbol, &s.PurchasePrice, &s.PurchaseDate, &s.Shares); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

// Get retrieves a position by ID. Returns ErrNotFound if it does not exist.
func (r *Repository) Get(id string) (*domain.Stock, error) {
	var s domain.Stock
	err := r.db.QueryRow(`
		SELECT id, name, symbol, purchase_price, purchase_date, shares
		FROM stocks WHERE id = ?
	`, id).Scan(&s.ID, &s.Name, &s.Symbol, &s.PurchasePrice, &s.PurchaseDate, &s.Shares)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %s: %w", id, err)
	}
	return &s, nil
}

// Update replaces every field of an existing position except its ID.
func (r *Repository) Update(id string, stock domain.Stock) error {
	stock = normalize(stock)

	res, err := r.db.Exec(`
		UPDATE stocks
		SET name = ?, symbol = ?, purchase_price = ?, purchase_date = ?, shares = ?, updated_at = ?
		WHERE id = ?
	`, stock.Name, stock.Symbol, stock.PurchasePrice, stock.PurchaseDate, stock.Shares, time.Now().Unix(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSymbol
		}
		return fmt.Errorf("failed to update stock %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result for %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a position by ID.
func (r *Repository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM stocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result for %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.log.Debug().Str("id", id).Msg("Deleted stock")
	return nil
}

// normalize applies the storage invariants: upper-cased symbol, 2-digit
// purchase price, "NA" defaults for the optional fields.
func normalize(stock domain.Stock) domain.Stock {
	stock.Symbol = domain.NormalizeSymbol(stock.Symbol)
	stock.PurchasePrice = domain.Round2(stock.PurchasePrice)
	if stock.Name == "" {
		stock.Name = "NA"
	}
	if stock.PurchaseDate == "" {
		stock.PurchaseDate = "NA"
	}
	return stock
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
