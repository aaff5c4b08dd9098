package tenants

import "github.com/go-chi/chi/v5"

// MountRoutes registers the tenant pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard/tenants", h.List)
	r.Get("/dashboard/tenants/export.csv", h.Export)
}
