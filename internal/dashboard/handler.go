package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Handler serves the dashboard overview and usage tabs.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
}

// NewHandler wires the dashboard pages.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine) *Handler {
	return &Handler{logger: logger, service: service, templates: templates}
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, shared, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("build overview failed", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusServiceUnavailable)
		return
	}
	if shared {
		h.logger.Debug("overview build shared")
	}
	h.render(w, r, "pages/dashboard.html", map[string]any{"Overview": overview})
}

func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/usage.html", map[string]any{"Usage": h.service.Usage()})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]any) {
	if err := h.templates.Page(w, r, tmpl, "Dashboard", data, http.StatusOK); err != nil {
		h.logger.Error("template render failed", "error", err, "template", tmpl)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// MountRoutes registers the dashboard tabs.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Overview)
	r.Get("/dashboard", h.Overview)
	r.Get("/dashboard/usage", h.Usage)
}
