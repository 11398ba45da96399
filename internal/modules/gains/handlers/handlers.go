// Package handlers provides the HTTP handlers for the capital-gains service.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/modules/gains"
)

// Handler handles capital-gains HTTP requests
type Handler struct {
	service *gains.Service
	log     zerolog.Logger
}

// NewHandler creates a new capital-gains handler
func NewHandler(service *gains.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "gains").Logger(),
	}
}

// HandleCapitalGains aggregates capital gains across the selected portfolios.
// GET /capital-gains?portfolio=<tag>&numsharesgt=<int>&numshareslt=<int>
func (h *Handler) HandleCapitalGains(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var bounds gains.ShareBounds
	if raw := query.Get("numsharesgt"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "numsharesgt must be an integer")
			return
		}
		bounds.GreaterThan = &n
	}
	if raw := query.Get("numshareslt"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "numshareslt must be an integer")
			return
		}
		bounds.LessThan = &n
	}

	total, err := h.service.CapitalGains(r.Context(), query.Get("portfolio"), bounds)
	if err != nil {
		h.log.Error().Err(err).Msg("Capital gains aggregation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]float64{"total_capital_gains": total})
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
