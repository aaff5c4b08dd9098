package support

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Handler serves the support tab.
type Handler struct {
	logger    *slog.Logger
	tickets   []Ticket
	templates *view.Engine
	pageSize  int
}

// NewHandler wires the support tab over the fixture tickets.
func NewHandler(logger *slog.Logger, tickets []Ticket, templates *view.Engine, pageSize int) *Handler {
	return &Handler{logger: logger, tickets: slices.Clone(tickets), templates: templates, pageSize: pageSize}
}

// Tickets returns every ticket.
func (h *Handler) Tickets() []Ticket { return slices.Clone(h.tickets) }

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	q, err := listview.ParseQuery(r.URL.Query(), h.pageSize)
	res := Schema.Run(h.tickets, q)
	controls := listview.NewControls("/dashboard/support", Schema, res)
	if err != nil {
		controls.Notice = err.Error()
	}
	active := 0
	for _, t := range h.tickets {
		if t.Active() {
			active++
		}
	}
	if err := h.templates.Page(w, r, "pages/support.html", "Support", map[string]any{
		"Tickets":  res.Items,
		"Controls": controls,
		"Active":   active,
	}, http.StatusOK); err != nil {
		h.logger.Error("template render failed", "error", err, "template", "pages/support.html")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// MountRoutes registers the support tab.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard/support", h.Page)
}
