package payments

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Handler serves the payment verification pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	pageSize  int
}

// NewHandler wires the payment pages.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, pageSize int) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, pageSize: pageSize}
}

// TabLink is a rendered status tab.
type TabLink struct {
	Tab
	Count  int
	URL    string
	Active bool
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := listview.ParseQuery(values, h.pageSize)
	if raw := values.Get("tab"); raw != "" {
		q.Category = listview.All
		if t := TabByKey(raw); t.Status != "" {
			q.Category = t.Status
		}
	}
	tab := tabForCategory(q.Category)

	all := h.service.List()
	res := Schema.Run(all, q)
	controls := listview.NewControls("/payments", Schema, res)
	if err != nil {
		controls.Notice = err.Error()
	}

	counts := Counts(all)
	tabs := make([]TabLink, 0, len(Tabs))
	for _, t := range Tabs {
		link := "/payments"
		if t.Key != "all" {
			link += "?tab=" + t.Key
		}
		tabs = append(tabs, TabLink{Tab: t, Count: counts[t.Key], URL: link, Active: t.Key == tab.Key})
	}
	h.render(w, r, "pages/payments_list.html", map[string]any{
		"Payments": res.Items,
		"Controls": controls,
		"Tabs":     tabs,
		"Tab":      tab,
	}, http.StatusOK)
}

func tabForCategory(category string) Tab {
	for _, t := range Tabs[1:] {
		if strings.EqualFold(t.Status, category) {
			return t
		}
	}
	return Tabs[0]
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, r, "pages/payments_detail.html", map[string]any{"Payment": p}, http.StatusOK)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) { h.review(w, r, Accept) }

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) { h.review(w, r, Reject) }

func (h *Handler) review(w http.ResponseWriter, r *http.Request, d Decision) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	back := "/payments/" + strconv.FormatInt(p.ID, 10)
	updated, err := h.service.Review(r.Context(), p.ID, d)
	switch {
	case errors.Is(err, ErrAlreadyReviewed):
		shared.RedirectWithFlash(w, r, back, "error", "Payment "+p.TransactionID+" was already reviewed")
	case err != nil:
		h.logger.Warn("payment review failed", "error", err, "id", p.ID, "decision", d)
		shared.RedirectWithFlash(w, r, back, "error", "Payment review could not be completed. Please try again.")
	case d == Accept:
		shared.RedirectWithFlash(w, r, "/payments", "success", "Payment "+updated.TransactionID+" accepted!")
	default:
		shared.RedirectWithFlash(w, r, "/payments", "success", "Payment "+updated.TransactionID+" rejected!")
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (Payment, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return Payment{}, false
	}
	p, err := h.service.Get(id)
	if err != nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return Payment{}, false
	}
	return p, true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]any, status int) {
	if err := h.templates.Page(w, r, tmpl, "Payments", data, status); err != nil {
		h.logger.Error("template render failed", "error", err, "template", tmpl)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
