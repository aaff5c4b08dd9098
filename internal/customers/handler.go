package customers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/forms"
	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

const (
	registrationForm = "customer_registration"
	editForm         = "customer_edit"
)

// Handler serves the customer pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	guard     forms.Guard
	metrics   *observability.Metrics
	pageSize  int
}

// NewHandler wires the customer pages.
func NewHandler(
	logger *slog.Logger,
	service *Service,
	templates *view.Engine,
	guard forms.Guard,
	metrics *observability.Metrics,
	pageSize int,
) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		guard:     guard,
		metrics:   metrics,
		pageSize:  pageSize,
	}
}

type formErrors map[string]string

// formState is the template model of the customer form.
type formState struct {
	Values        forms.Values
	Errors        formErrors
	Notice        string
	Token         string
	Step          int
	Carry         []string
	EndDateLocked bool
	Terms         []plans.Term
	Action        string
	Customer      *Customer
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := listview.ParseQuery(r.URL.Query(), h.pageSize)
	res := Schema.Run(h.service.List(), q)
	controls := listview.NewControls("/customers", Schema, res)
	if err != nil {
		controls.Notice = err.Error()
	}
	h.render(w, r, "pages/customers_list.html", map[string]any{
		"Customers": res.Items,
		"Controls":  controls,
	}, http.StatusOK)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.render(w, r, "pages/customers_detail.html", map[string]any{
		"Customer": c,
	}, http.StatusOK)
}

// ShowForm renders step one of the registration wizard.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	v := forms.Values{FieldStatus: string(StatusActive)}
	h.renderForm(w, r, h.newFormState(v, StepCompany, "/customers"), http.StatusOK)
}

// Step moves the wizard between steps. Step one must validate before step
// two is shown; going back never validates.
func (h *Handler) Step(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	v := ParseForm(r.PostForm)
	state := h.newFormState(v, StepCompany, "/customers")
	state.Token = r.PostFormValue(shared.FormTokenField)
	if state.Token == "" {
		state.Token = shared.NewFormToken()
	}

	if r.PostFormValue("back") != "" || ParseStep(r.PostFormValue("step")) == StepSubscription {
		h.renderForm(w, r, state, http.StatusOK)
		return
	}
	if errs := FormSchema.ValidateStep(StepCompany, v); errs.Any() {
		state.Errors = formErrors(errs)
		h.metrics.FormSubmitted(registrationForm, string(forms.OutcomeInvalid))
		h.renderForm(w, r, state, http.StatusUnprocessableEntity)
		return
	}
	state.Step = StepSubscription
	h.renderForm(w, r, state, http.StatusOK)
}

// Create submits the completed registration.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	v := ParseForm(r.PostForm)
	token := r.PostFormValue(shared.FormTokenField)

	var created Customer
	sub := forms.NewSubmission(v)
	outcome, err := forms.Process(r.Context(), h.guard, token, sub, FormSchema, func(ctx context.Context, v forms.Values) error {
		var err error
		created, err = h.service.Register(ctx, v)
		return err
	})
	h.metrics.FormSubmitted(registrationForm, string(outcome))
	if outcome == forms.OutcomeSucceeded {
		shared.RedirectWithFlash(w, r, "/customers/"+strconv.FormatInt(created.ID, 10), "success", "Customer added successfully!")
		return
	}
	if outcome == forms.OutcomeFailed {
		h.logger.Warn("register customer failed", "error", err)
	}

	state := h.newFormState(v, StepSubscription, "/customers")
	state.Token = token
	state.Errors = formErrors(sub.Errors)
	state.Notice = sub.Notice
	if errs := FormSchema.ValidateStep(StepCompany, v); errs.Any() {
		state.Step = StepCompany
	}
	h.renderForm(w, r, state, outcome.Status())
}

func (h *Handler) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	state := h.newFormState(ValuesOf(c), 0, editPath(c.ID))
	state.Customer = &c
	h.renderForm(w, r, state, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	v := ParseForm(r.PostForm)
	token := r.PostFormValue(shared.FormTokenField)

	sub := forms.NewSubmission(v)
	outcome, err := forms.Process(r.Context(), h.guard, token, sub, FormSchema, func(ctx context.Context, v forms.Values) error {
		_, err := h.service.Update(ctx, c.ID, v)
		return err
	})
	h.metrics.FormSubmitted(editForm, string(outcome))
	if outcome == forms.OutcomeSucceeded {
		shared.RedirectWithFlash(w, r, detailPath(c.ID), "success", "Customer updated successfully!")
		return
	}
	if outcome == forms.OutcomeFailed {
		h.logger.Warn("update customer failed", "error", err, "id", c.ID)
	}
	state := h.newFormState(v, 0, editPath(c.ID))
	state.Customer = &c
	state.Token = token
	state.Errors = formErrors(sub.Errors)
	state.Notice = sub.Notice
	h.renderForm(w, r, state, outcome.Status())
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	updated, err := h.service.ToggleStatus(r.Context(), c.ID)
	if err != nil {
		h.logger.Warn("toggle customer status failed", "error", err, "id", c.ID)
		shared.RedirectWithFlash(w, r, detailPath(c.ID), "error", "Failed to update status")
		return
	}
	shared.RedirectWithFlash(w, r, detailPath(c.ID), "success", "Customer marked as "+string(updated.Status))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), c.ID); err != nil {
		h.logger.Warn("delete customer failed", "error", err, "id", c.ID)
		shared.RedirectWithFlash(w, r, detailPath(c.ID), "error", "Failed to delete customer")
		return
	}
	shared.RedirectWithFlash(w, r, "/customers", "success", "Customer deleted")
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.service.ResetPassword(r.Context(), c.ID); err != nil {
		h.logger.Warn("password reset failed", "error", err, "id", c.ID)
		shared.RedirectWithFlash(w, r, detailPath(c.ID), "error", "Failed to send password reset link")
		return
	}
	shared.RedirectWithFlash(w, r, detailPath(c.ID), "success", "Password reset link sent!")
}

// fieldResult answers a blur validation request.
type fieldResult struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	EndDate string `json:"end_date,omitempty"`
}

// ValidateField validates the field named by ?field= against the posted
// form, so cross-field rules see their peers.
func (h *Handler) ValidateField(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed form body")
		return
	}
	field := r.FormValue("field")
	if !FormSchema.Has(field) {
		httpx.Problem(w, http.StatusBadRequest, "Unknown Field", field)
		return
	}
	v := ParseForm(r.PostForm)
	msg, ok := FormSchema.ValidateField(field, v)
	res := fieldResult{Field: field, Valid: ok, Message: msg}
	if EndDateLocked(v) {
		res.EndDate = v.Get(FieldEndDate)
	}
	httpx.JSON(w, http.StatusOK, res)
}

type endDateResult struct {
	EndDate  string `json:"end_date"`
	ReadOnly bool   `json:"read_only"`
}

// EndDate returns the derived end date for ?plan= and ?start=.
func (h *Handler) EndDate(w http.ResponseWriter, r *http.Request) {
	plan, start := r.URL.Query().Get("plan"), r.URL.Query().Get("start")
	if _, ok := plans.LookupTerm(plan); !ok {
		httpx.JSON(w, http.StatusOK, endDateResult{})
		return
	}
	end, ok := plans.DeriveEndDate(plan, start)
	if !ok {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Start Date", "start must be YYYY-MM-DD")
		return
	}
	httpx.JSON(w, http.StatusOK, endDateResult{EndDate: end, ReadOnly: true})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (Customer, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return Customer{}, false
	}
	c, err := h.service.Get(id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.logger.Error("get customer failed", "error", err, "id", id)
		}
		http.Error(w, "Customer not found", http.StatusNotFound)
		return Customer{}, false
	}
	return c, true
}

func (h *Handler) newFormState(v forms.Values, step int, action string) formState {
	return formState{
		Values:        v,
		Errors:        formErrors{},
		Token:         shared.NewFormToken(),
		Step:          step,
		EndDateLocked: EndDateLocked(v),
		Terms:         plans.Terms(),
		Action:        action,
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, state formState, status int) {
	switch state.Step {
	case StepCompany:
		state.Carry = StepFields(StepSubscription)
	case StepSubscription:
		state.Carry = StepFields(StepCompany)
	}
	tmpl := "pages/customers_form.html"
	if state.Customer != nil {
		tmpl = "pages/customers_edit.html"
	}
	h.render(w, r, tmpl, map[string]any{"Form": state}, status)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]any, status int) {
	if err := h.templates.Page(w, r, tmpl, "Customers", data, status); err != nil {
		h.logger.Error("template render failed", "error", err, "template", tmpl)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func detailPath(id int64) string { return "/customers/" + strconv.FormatInt(id, 10) }

func editPath(id int64) string { return detailPath(id) + "/edit" }
