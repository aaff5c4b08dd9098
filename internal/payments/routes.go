package payments

import "github.com/go-chi/chi/v5"

// MountRoutes registers the payment pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/payments", h.List)
	r.Get("/payments/{id}", h.Show)
	r.Post("/payments/{id}/accept", h.Accept)
	r.Post("/payments/{id}/reject", h.Reject)
}
