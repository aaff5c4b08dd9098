package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/backend"
	"github.com/odyssey-erp/odyssey-console/internal/billing"
	"github.com/odyssey-erp/odyssey-console/internal/customers"
	"github.com/odyssey-erp/odyssey-console/internal/dashboard"
	"github.com/odyssey-erp/odyssey-console/internal/fixtures"
	"github.com/odyssey-erp/odyssey-console/internal/payments"
	"github.com/odyssey-erp/odyssey-console/internal/support"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	ds, err := fixtures.Load(fixtures.Embedded())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := backend.NewStub(logger, 0)
	customerRepo, err := customers.NewMemoryRepository(ds.Customers)
	require.NoError(t, err)
	paymentSvc, err := payments.NewService(ds.Payments, gateway, logger)
	require.NoError(t, err)
	tenantRepo := tenants.NewRepository(ds.Tenants)

	h := NewHandler(logger, Deps{
		Customers: customers.NewService(customerRepo, gateway, logger),
		Tenants:   tenantRepo,
		Payments:  paymentSvc,
		Billing:   billing.NewHandler(logger, tenantRepo, ds.Invoices, nil, 20),
		Support:   support.NewHandler(logger, ds.Tickets, nil, 20),
		Dashboard: dashboard.NewService(tenantRepo, ds.Activity, ds.Stats),
	}, 20)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCustomersSearch(t *testing.T) {
	rec := get(t, newRouter(t), "/api/v1/customers?q=SUNRISE")
	require.Equal(t, http.StatusOK, rec.Code)

	var page Page[customers.Customer]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sunrise Developers", page.Items[0].CompanyName)
}

func TestCustomersPageIsClamped(t *testing.T) {
	rec := get(t, newRouter(t), "/api/v1/customers?page_size=7&page=9")
	require.Equal(t, http.StatusOK, rec.Code)

	var page Page[customers.Customer]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, []PageEntry{{Number: 1}, {Number: 2, Current: true}}, page.Pages)
}

func TestEmptyResultEncodesEmptyArray(t *testing.T) {
	rec := get(t, newRouter(t), "/api/v1/tenants?q=nothing-matches")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	assert.Contains(t, rec.Body.String(), `"total_pages":1`)
}

func TestMalformedQueryIsRejected(t *testing.T) {
	rec := get(t, newRouter(t), "/api/v1/payments?start=11/05/2025")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestUnknownCustomer(t *testing.T) {
	h := newRouter(t)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/customers/999").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/api/v1/customers/abc").Code)
}

func TestPaymentIncludesFees(t *testing.T) {
	rec := get(t, newRouter(t), "/api/v1/payments/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TransactionID string  `json:"transaction_id"`
		Fee           float64 `json:"fee"`
		Net           float64 `json:"net"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "#TXN-58743", body.TransactionID)
	assert.InDelta(t, 37.70, body.Fee, 0.001)
	assert.InDelta(t, 1262.29, body.Net, 0.001)
}

func TestBillingSummaryAndDashboard(t *testing.T) {
	h := newRouter(t)

	rec := get(t, h, "/api/v1/billing/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary billing.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.OverdueCount)
	assert.InDelta(t, 5097, summary.Overdue, 0.001)
	assert.InDelta(t, summary.MRR*12, summary.ARR, 0.001)

	rec = get(t, h, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var ov dashboard.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	assert.Equal(t, 12, ov.Organizations)
	assert.Len(t, ov.RecentActivity, dashboard.RecentActivityLimit)
}

func TestTicketsFilterByCategory(t *testing.T) {
	rec := get(t, newRouter(t), "/api/v1/tickets?category=Open")
	require.Equal(t, http.StatusOK, rec.Code)

	var page Page[support.Ticket]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Total)
	for _, tk := range page.Items {
		assert.Equal(t, support.StatusOpen, tk.Status)
	}
}
