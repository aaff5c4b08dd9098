package plans

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/forms"
	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

const formName = "plan"

// Handler serves the subscription plan pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	guard     forms.Guard
	metrics   *observability.Metrics
}

// NewHandler wires the plan pages.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, guard forms.Guard, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, guard: guard, metrics: metrics}
}

// Card is one plan as shown for the selected billing cycle.
type Card struct {
	Plan     Plan
	Price    float64
	Offered  bool
	Discount int
}

type formErrors map[string]string

// List shows the catalog priced for ?cycle=monthly|yearly.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cycle := BillingMonthly
	if strings.EqualFold(r.URL.Query().Get("cycle"), string(BillingYearly)) {
		cycle = BillingYearly
	}
	catalog := h.service.List()
	cards := make([]Card, 0, len(catalog))
	for _, p := range catalog {
		price, offered := p.Price(cycle)
		cards = append(cards, Card{Plan: p, Price: price, Offered: offered, Discount: p.Discount()})
	}
	h.render(w, r, "pages/plans_list.html", map[string]any{
		"Cards": cards,
		"Cycle": string(cycle),
	}, http.StatusOK)
}

// ShowForm renders an empty plan form.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, NewFormInput(), shared.NewFormToken(), formErrors{}, "", http.StatusOK)
}

// Create handles the plan form. The add_feature and remove_feature buttons
// re-render the form with the edited feature rows.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	in := ParseForm(r.PostForm)
	token := r.PostFormValue(shared.FormTokenField)

	if r.PostFormValue("add_feature") != "" {
		in.AddFeature()
		h.renderForm(w, r, in, token, formErrors{}, "", http.StatusOK)
		return
	}
	if raw := r.PostFormValue("remove_feature"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			in.RemoveFeature(i)
		}
		h.renderForm(w, r, in, token, formErrors{}, "", http.StatusOK)
		return
	}

	sub := forms.NewSubmission(in.Values)
	schema := NewFormSchema(h.service.Exists)
	outcome, err := forms.Process(r.Context(), h.guard, token, sub, schema, func(ctx context.Context, _ forms.Values) error {
		return h.service.Create(ctx, in.Plan())
	})
	if outcome == forms.OutcomeSucceeded {
		h.metrics.FormSubmitted(formName, string(outcome))
		shared.RedirectWithFlash(w, r, "/plans", "success", "Subscription plan created successfully")
		return
	}

	errs := formErrors(sub.Errors)
	notice := sub.Notice
	if errors.Is(err, ErrAlreadyExists) {
		errs[FieldName] = "A plan with this name already exists"
		notice = ""
		outcome = forms.OutcomeInvalid
	}
	if outcome == forms.OutcomeFailed {
		h.logger.Warn("create plan failed", "error", err)
	}
	h.metrics.FormSubmitted(formName, string(outcome))
	h.renderForm(w, r, in, token, errs, notice, outcome.Status())
}

// Delete removes a plan.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.service.Delete(r.Context(), name); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Plan not found", http.StatusNotFound)
			return
		}
		h.logger.Warn("delete plan failed", "error", err, "plan", name)
		shared.RedirectWithFlash(w, r, "/plans", "error", "The plan could not be deleted. Please try again.")
		return
	}
	shared.RedirectWithFlash(w, r, "/plans", "success", "Plan deleted")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, in FormInput, token string, errs formErrors, notice string, status int) {
	if token == "" {
		token = shared.NewFormToken()
	}
	h.render(w, r, "pages/plans_form.html", map[string]any{
		"Input":    in,
		"Errors":   errs,
		"Notice":   notice,
		"Token":    token,
		"Tiers":    Tiers,
		"Discount": in.Discount(),
	}, status)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]any, status int) {
	if err := h.templates.Page(w, r, tmpl, "Subscription Plans", data, status); err != nil {
		h.logger.Error("template render failed", "error", err, "template", tmpl)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
