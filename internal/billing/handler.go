package billing

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Handler serves the billing tab.
type Handler struct {
	logger    *slog.Logger
	tenants   *tenants.Repository
	invoices  []Invoice
	templates *view.Engine
	pageSize  int
}

// NewHandler wires the billing tab over the fixture invoices.
func NewHandler(logger *slog.Logger, tenantRepo *tenants.Repository, invoices []Invoice, templates *view.Engine, pageSize int) *Handler {
	return &Handler{
		logger:    logger,
		tenants:   tenantRepo,
		invoices:  slices.Clone(invoices),
		templates: templates,
		pageSize:  pageSize,
	}
}

// Invoices returns every invoice.
func (h *Handler) Invoices() []Invoice { return slices.Clone(h.invoices) }

// Summary computes the billing KPIs.
func (h *Handler) Summary() Summary { return Summarise(h.tenants.List(), h.invoices) }

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	q, err := listview.ParseQuery(r.URL.Query(), h.pageSize)
	res := Schema.Run(h.Invoices(), q)
	controls := listview.NewControls("/dashboard/billing", Schema, res)
	if err != nil {
		controls.Notice = err.Error()
	}
	if err := h.templates.Page(w, r, "pages/billing.html", "Billing", map[string]any{
		"Summary":  h.Summary(),
		"Invoices": res.Items,
		"Controls": controls,
	}, http.StatusOK); err != nil {
		h.logger.Error("template render failed", "error", err, "template", "pages/billing.html")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
