package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/odyssey-console/internal/api"
	"github.com/odyssey-erp/odyssey-console/internal/backend"
	"github.com/odyssey-erp/odyssey-console/internal/billing"
	"github.com/odyssey-erp/odyssey-console/internal/customers"
	"github.com/odyssey-erp/odyssey-console/internal/dashboard"
	"github.com/odyssey-erp/odyssey-console/internal/fixtures"
	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/payments"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/support"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Console is the assembled application.
type Console struct {
	Router  http.Handler
	Guard   *shared.SubmissionGuard
	Metrics *observability.Metrics
	Backend *backend.Stub
}

// NewConsole loads the fixtures and wires every handler into a router.
func NewConsole(cfg *Config, logger *slog.Logger) (*Console, error) {
	ds, err := fixtures.Load(fixtures.Source(cfg.FixturesDir))
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	if problems := fixtures.Check(ds); len(problems) > 0 {
		for _, p := range problems {
			logger.Warn("fixture problem", slog.String("file", p.File), slog.String("record", p.Record), slog.String("message", p.Message))
		}
	}
	templates, err := view.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	metrics := observability.NewMetrics()
	stub := backend.NewStub(logger, cfg.SubmitFailureEvery)
	gateway := backend.Observe(stub, metrics.BackendCalled)
	guard := shared.NewSubmissionGuard()
	pageSize := cfg.DefaultPageSize

	customerRepo, err := customers.NewMemoryRepository(ds.Customers)
	if err != nil {
		return nil, fmt.Errorf("seed customers: %w", err)
	}
	customerService := customers.NewService(customerRepo, gateway, logger)

	planRepo, err := plans.NewMemoryRepository(ds.Plans)
	if err != nil {
		return nil, fmt.Errorf("seed plans: %w", err)
	}
	planService := plans.NewService(planRepo, gateway, logger)

	paymentService, err := payments.NewService(ds.Payments, gateway, logger)
	if err != nil {
		return nil, fmt.Errorf("seed payments: %w", err)
	}

	tenantRepo := tenants.NewRepository(ds.Tenants)
	dashboardService := dashboard.NewService(tenantRepo, ds.Activity, ds.Stats)
	billingHandler := billing.NewHandler(logger, tenantRepo, ds.Invoices, templates, pageSize)
	supportHandler := support.NewHandler(logger, ds.Tickets, templates, pageSize)

	router := NewRouter(RouterParams{
		Logger:           logger,
		Config:           cfg,
		Templates:        templates,
		DashboardHandler: dashboard.NewHandler(logger, dashboardService, templates),
		TenantsHandler:   tenants.NewHandler(logger, tenantRepo, templates, pageSize),
		BillingHandler:   billingHandler,
		SupportHandler:   supportHandler,
		CustomersHandler: customers.NewHandler(logger, customerService, templates, guard, metrics, pageSize),
		PlansHandler:     plans.NewHandler(logger, planService, templates, guard, metrics),
		PaymentsHandler:  payments.NewHandler(logger, paymentService, templates, pageSize),
		APIHandler: api.NewHandler(logger, api.Deps{
			Customers: customerService,
			Tenants:   tenantRepo,
			Payments:  paymentService,
			Billing:   billingHandler,
			Support:   supportHandler,
			Dashboard: dashboardService,
		}, pageSize),
		Metrics:        metrics,
		RequestLogging: !InTestMode(),
	})
	return &Console{Router: router, Guard: guard, Metrics: metrics, Backend: stub}, nil
}
