package database

// Schema is the single source of truth for the stocks database layout.
// Symbols are stored upper-cased; the UNIQUE constraint enforces the
// one-position-per-symbol invariant at the storage layer.
const Schema = `
CREATE TABLE IF NOT EXISTS stocks (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL DEFAULT 'NA',
    symbol         TEXT NOT NULL UNIQUE,
    purchase_price REAL NOT NULL,
    purchase_date  TEXT NOT NULL DEFAULT 'NA',
    shares         INTEGER NOT NULL,
    created_at     INTEGER NOT NULL,
    updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stocks_symbol ON stocks(symbol);
`
