package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/odyssey-console/internal/api"
	"github.com/odyssey-erp/odyssey-console/internal/billing"
	"github.com/odyssey-erp/odyssey-console/internal/customers"
	"github.com/odyssey-erp/odyssey-console/internal/dashboard"
	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/payments"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/support"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
	"github.com/odyssey-erp/odyssey-console/internal/view"
	"github.com/odyssey-erp/odyssey-console/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Templates        *view.Engine
	DashboardHandler *dashboard.Handler
	TenantsHandler   *tenants.Handler
	BillingHandler   *billing.Handler
	SupportHandler   *support.Handler
	CustomersHandler *customers.Handler
	PlansHandler     *plans.Handler
	PaymentsHandler  *payments.Handler
	APIHandler       *api.Handler
	Metrics          *observability.Metrics
	// RequestLogging enables chi's per-request log line.
	RequestLogging bool
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	if params.RequestLogging {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.DashboardHandler != nil {
		params.DashboardHandler.MountRoutes(r)
	}
	if params.TenantsHandler != nil {
		params.TenantsHandler.MountRoutes(r)
	}
	if params.BillingHandler != nil {
		params.BillingHandler.MountRoutes(r)
	}
	if params.SupportHandler != nil {
		params.SupportHandler.MountRoutes(r)
	}
	if params.CustomersHandler != nil {
		params.CustomersHandler.MountRoutes(r)
	}
	if params.PlansHandler != nil {
		params.PlansHandler.MountRoutes(r)
	}
	if params.PaymentsHandler != nil {
		params.PaymentsHandler.MountRoutes(r)
	}
	if params.APIHandler != nil {
		params.APIHandler.MountRoutes(r)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(web.Assets())))
	r.Handle("/static/*", staticCacheHandler(fileServer))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if params.Templates == nil {
			http.NotFound(w, r)
			return
		}
		if err := params.Templates.Page(w, r, "pages/not_found.html", "Page not found", nil, http.StatusNotFound); err != nil {
			params.Logger.Error("render not found", slog.Any("error", err))
			http.NotFound(w, r)
		}
	})

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Static assets are cached for 1 hour in browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
