package web

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the page at / and the JSON API under /api.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Route("/api", func(r chi.Router) {
		r.Get("/truthtable", h.TruthTable)
	})
}
