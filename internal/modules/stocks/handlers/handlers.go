// Package handlers provides the HTTP handlers for the stocks service.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/stocks"
)

// Handler handles stocks HTTP requests
type Handler struct {
	repo    *stocks.Repository
	service *stocks.ValuationService
	log     zerolog.Logger
}

// NewHandler creates a new stocks handler
func NewHandler(repo *stocks.Repository, service *stocks.ValuationService, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
		log:     log.With().Str("handler", "stocks").Logger(),
	}
}

// stockRequest is the statically-typed request body for create and update.
// Pointer fields distinguish "absent" from zero values so validation can name
// the missing field.
type stockRequest struct {
	ID            *string  `json:"id"`
	Name          *string  `json:"name"`
	Symbol        *string  `json:"symbol"`
	PurchasePrice *float64 `json:"purchase price"`
	PurchaseDate  *string  `json:"purchase date"`
	Shares        *int     `json:"shares"`
}

// decodeStockRequest parses a request body. On failure it returns the HTTP
// status to respond with (415 for a non-JSON body or a mistyped field) and a
// message naming the offending field.
func decodeStockRequest(r *http.Request) (*stockRequest, int, string) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return nil, http.StatusUnsupportedMediaType, "Expected json media type"
	}

	var req stockRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, http.StatusUnsupportedMediaType,
				"field " + typeErr.Field + " must be of type " + typeErr.Type.String()
		}
		return nil, http.StatusUnsupportedMediaType, "Expected json media type"
	}

	return &req, 0, ""
}

// validateValues enforces the value-range invariants shared by create and
// update: positive share count, non-negative purchase price.
func validateValues(req *stockRequest) (int, string) {
	if req.Shares != nil && *req.Shares <= 0 {
		return http.StatusBadRequest, "field shares must be a positive integer"
	}
	if req.PurchasePrice != nil && *req.PurchasePrice < 0 {
		return http.StatusBadRequest, "field purchase price must be non-negative"
	}
	return 0, ""
}

// HandleCreateStock adds a new position.
// POST /stocks
func (h *Handler) HandleCreateStock(w http.ResponseWriter, r *http.Request) {
	req, status, msg := decodeStockRequest(r)
	if req == nil {
		h.writeError(w, status, msg)
		return
	}

	// Required fields: symbol, purchase price, shares
	switch {
	case req.Symbol == nil:
		h.writeError(w, http.StatusUnsupportedMediaType, "missing required field: symbol")
		return
	case req.PurchasePrice == nil:
		h.writeError(w, http.StatusUnsupportedMediaType, "missing required field: purchase price")
		return
	case req.Shares == nil:
		h.writeError(w, http.StatusUnsupportedMediaType, "missing required field: shares")
		return
	}
	if status, msg := validateValues(req); status != 0 {
		h.writeError(w, status, msg)
		return
	}

	stock := domain.Stock{
		Symbol:        *req.Symbol,
		PurchasePrice: *req.PurchasePrice,
		Shares:        *req.Shares,
	}
	if req.Name != nil {
		stock.Name = *req.Name
	}
	if req.PurchaseDate != nil {
		stock.PurchaseDate = *req.PurchaseDate
	}

	id, err := h.repo.Insert(stock)
	if err != nil {
		if errors.Is(err, stocks.ErrDuplicateSymbol) {
			h.writeError(w, http.StatusBadRequest, "Stock symbol already exists")
			return
		}
		h.log.Error().Err(err).Msg("Failed to insert stock")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleListStocks returns every position in the store.
// GET /stocks
func (h *Handler) HandleListStocks(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list stocks")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// HandleGetStock returns one position by ID.
// GET /stocks/{id}
func (h *Handler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, stocks.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to get stock")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

// HandleUpdateStock replaces a position in full.
// PUT /stocks/{id}
func (h *Handler) HandleUpdateStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, status, msg := decodeStockRequest(r)
	if req == nil {
		if status == http.StatusUnsupportedMediaType && msg == "Expected json media type" {
			h.writeError(w, http.StatusBadRequest, "Malformed data")
			return
		}
		h.writeError(w, status, msg)
		return
	}

	if _, err := h.repo.Get(id); err != nil {
		if errors.Is(err, stocks.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Full replacement: every field is required
	required := []struct {
		name    string
		present bool
	}{
		{"id", req.ID != nil},
		{"name", req.Name != nil},
		{"symbol", req.Symbol != nil},
		{"purchase price", req.PurchasePrice != nil},
		{"purchase date", req.PurchaseDate != nil},
		{"shares", req.Shares != nil},
	}
	for _, field := range required {
		if !field.present {
			h.writeError(w, http.StatusUnsupportedMediaType, "missing required field: "+field.name)
			return
		}
	}
	if *req.ID != id {
		h.writeError(w, http.StatusBadRequest, "not allowed to change id")
		return
	}
	if status, msg := validateValues(req); status != 0 {
		h.writeError(w, status, msg)
		return
	}

	err := h.repo.Update(id, domain.Stock{
		Name:          *req.Name,
		Symbol:        *req.Symbol,
		PurchasePrice: *req.PurchasePrice,
		PurchaseDate:  *req.PurchaseDate,
		Shares:        *req.Shares,
	})
	if err != nil {
		switch {
		case errors.Is(err, stocks.ErrDuplicateSymbol):
			h.writeError(w, http.StatusBadRequest, "Stock symbol already exists")
		case errors.Is(err, stocks.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "Not found")
		default:
			h.log.Error().Err(err).Msg("Failed to update stock")
			h.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// HandleDeleteStock removes a position.
// DELETE /stocks/{id}
func (h *Handler) HandleDeleteStock(w http.ResponseWriter, r *http.Request) {
	err := h.repo.Delete(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, stocks.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete stock")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleStockValue returns the live value of one position.
// GET /stock-value/{id}
func (h *Handler) HandleStockValue(w http.ResponseWriter, r *http.Request) {
	value, err := h.service.StockValue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, stocks.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to compute stock value")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, value)
}

// HandlePortfolioValue returns the live value of the whole portfolio.
// GET /portfolio-value
func (h *Handler) HandlePortfolioValue(w http.ResponseWriter, r *http.Request) {
	value, err := h.service.PortfolioValue(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute portfolio value")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, value)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
