package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all capital-gains service routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/capital-gains", h.HandleCapitalGains)
}
