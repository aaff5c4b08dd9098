package customers

import "github.com/go-chi/chi/v5"

// MountRoutes registers the customer pages.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/new", h.ShowForm)
	r.Post("/customers/new", h.Step)
	r.Post("/customers/validate", h.ValidateField)
	r.Get("/customers/end-date", h.EndDate)
	r.Route("/customers/{id}", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Get("/edit", h.ShowEditForm)
		r.Post("/edit", h.Update)
		r.Post("/status", h.ToggleStatus)
		r.Post("/delete", h.Delete)
		r.Post("/reset-password", h.ResetPassword)
	})
}
