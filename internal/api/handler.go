// Package api exposes the console's collections as JSON under /api/v1.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/billing"
	"github.com/odyssey-erp/odyssey-console/internal/customers"
	"github.com/odyssey-erp/odyssey-console/internal/dashboard"
	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/payments"
	"github.com/odyssey-erp/odyssey-console/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/support"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

// Deps are the collections served by the API.
type Deps struct {
	Customers *customers.Service
	Tenants   *tenants.Repository
	Payments  *payments.Service
	Billing   *billing.Handler
	Support   *support.Handler
	Dashboard *dashboard.Service
}

// Handler serves the JSON endpoints.
type Handler struct {
	logger   *slog.Logger
	deps     Deps
	pageSize int
}

// NewHandler constructs the API handler.
func NewHandler(logger *slog.Logger, deps Deps, pageSize int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, deps: deps, pageSize: pageSize}
}

// PageEntry is one slot of the compact pager sequence.
type PageEntry struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Page is the envelope of every list endpoint.
type Page[T any] struct {
	Items      []T         `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Pages      []PageEntry `json:"pages"`
}

func newPage[T any](res listview.Result[T]) Page[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	window := res.Pagination.Window(shared.DefaultWindowDelta)
	pages := make([]PageEntry, 0, len(window))
	for _, it := range window {
		pages = append(pages, PageEntry{Number: it.Number, Ellipsis: it.Ellipsis, Current: it.Current})
	}
	return Page[T]{
		Items:      items,
		Total:      res.Total,
		Page:       res.Pagination.Page,
		PageSize:   res.Pagination.PerPage,
		TotalPages: res.Pagination.TotalPages,
		Pages:      pages,
	}
}

// list runs the pipeline for one collection. Unlike the HTML views a
// malformed query is rejected rather than reported inline.
func list[T any](h *Handler, w http.ResponseWriter, r *http.Request, schema listview.Schema[T], records []T) {
	q, err := listview.ParseQuery(r.URL.Query(), h.pageSize)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	httpx.JSON(w, http.StatusOK, newPage(schema.Run(records, q)))
}

func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, customers.Schema, h.deps.Customers.List())
}

func (h *Handler) Customer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid customer id", httpx.ErrValidation))
		return
	}
	c, err := h.deps.Customers.Get(id)
	if err != nil {
		h.respond(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) Tenants(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, tenants.Schema, h.deps.Tenants.List())
}

func (h *Handler) Payments(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, payments.Schema, h.deps.Payments.List())
}

func (h *Handler) Payment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid payment id", httpx.ErrValidation))
		return
	}
	p, err := h.deps.Payments.Get(id)
	if err != nil {
		h.respond(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, paymentBody{Payment: p, Fee: p.Fee(), Net: p.Net()})
}

type paymentBody struct {
	payments.Payment
	Fee float64 `json:"fee"`
	Net float64 `json:"net"`
}

func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, billing.Schema, h.deps.Billing.Invoices())
}

func (h *Handler) BillingSummary(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.deps.Billing.Summary())
}

func (h *Handler) Tickets(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, support.Schema, h.deps.Support.Tickets())
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ov, _, err := h.deps.Dashboard.Overview(r.Context())
	if err != nil {
		h.respond(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ov)
}

// respond translates domain errors into problem responses.
func (h *Handler) respond(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customers.ErrNotFound), errors.Is(err, payments.ErrNotFound):
		err = fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	default:
		h.logger.Error("api request failed", "error", err)
	}
	httpx.RespondError(w, err)
}

// MountRoutes registers the API under /api/v1.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/customers", h.Customers)
		r.Get("/customers/{id}", h.Customer)
		r.Get("/tenants", h.Tenants)
		r.Get("/payments", h.Payments)
		r.Get("/payments/{id}", h.Payment)
		r.Get("/invoices", h.Invoices)
		r.Get("/billing/summary", h.BillingSummary)
		r.Get("/tickets", h.Tickets)
		r.Get("/dashboard", h.Dashboard)
	})
}
