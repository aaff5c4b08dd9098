package tenants

import (
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Handler serves the tenant directory tab.
type Handler struct {
	logger    *slog.Logger
	repo      *Repository
	templates *view.Engine
	pageSize  int
}

// NewHandler wires the tenant pages.
func NewHandler(logger *slog.Logger, repo *Repository, templates *view.Engine, pageSize int) *Handler {
	return &Handler{logger: logger, repo: repo, templates: templates, pageSize: pageSize}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := listview.ParseQuery(r.URL.Query(), h.pageSize)
	all := h.repo.List()
	res := Schema.Run(all, q)
	controls := listview.NewControls("/dashboard/tenants", Schema, res)
	if err != nil {
		controls.Notice = err.Error()
	}
	exportURL := "/dashboard/tenants/export.csv"
	if enc := q.Values(); len(enc) > 0 {
		enc.Del("page")
		enc.Del("page_size")
		if s := enc.Encode(); s != "" {
			exportURL += "?" + s
		}
	}
	if err := h.templates.Page(w, r, "pages/tenants_list.html", "Tenants", map[string]any{
		"Tenants":   res.Items,
		"Controls":  controls,
		"All":       len(all),
		"ExportURL": exportURL,
	}, http.StatusOK); err != nil {
		h.logger.Error("template render failed", "error", err, "template", "pages/tenants_list.html")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Export streams the full filtered set, ignoring pagination.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	q, _ := listview.ParseQuery(r.URL.Query(), h.pageSize)
	rows := Schema.Filter(h.repo.List(), q)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tenants.csv"`)
	if err := WriteCSV(w, rows); err != nil {
		h.logger.Error("tenant export failed", "error", err)
	}
}
