package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all stocks service routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stocks", func(r chi.Router) {
		r.Post("/", h.HandleCreateStock)
		r.Get("/", h.HandleListStocks)
		r.Get("/{id}", h.HandleGetStock)
		r.Put("/{id}", h.HandleUpdateStock)
		r.Delete("/{id}", h.HandleDeleteStock)
	})

	r.Get("/stock-value/{id}", h.HandleStockValue)
	r.Get("/portfolio-value", h.HandlePortfolioValue)
}
