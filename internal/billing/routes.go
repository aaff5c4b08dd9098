package billing

import "github.com/go-chi/chi/v5"

// MountRoutes registers the billing tab.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard/billing", h.Page)
}
