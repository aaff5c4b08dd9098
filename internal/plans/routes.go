package plans

import "github.com/go-chi/chi/v5"

// MountRoutes registers the plan pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/plans", h.List)
	r.Get("/plans/new", h.ShowForm)
	r.Post("/plans", h.Create)
	r.Post("/plans/{name}/delete", h.Delete)
}
