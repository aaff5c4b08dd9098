package customers

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/forms"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
)

// Form field names.
const (
	FieldCompanyName = "company_name"
	FieldOwnerName   = "owner_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldPlan        = "plan"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldStatus      = "status"
)

// Registration steps.
const (
	StepCompany      = 1
	StepSubscription = 2
)

// MinSubscriptionDays is the shortest subscription span accepted.
const MinSubscriptionDays = 30

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

var formFields = []string{
	FieldCompanyName, FieldOwnerName, FieldEmail, FieldPhone, FieldAddress,
	FieldPlan, FieldStartDate, FieldEndDate, FieldStatus,
}

// FormSchema validates the registration and edit forms.
var FormSchema = forms.Schema{Rules: []forms.Rule{
	{Field: FieldCompanyName, Step: StepCompany, Check: forms.Required(FieldCompanyName), Message: "Company name is required"},
	{Field: FieldCompanyName, Step: StepCompany, Check: forms.Length(FieldCompanyName, 2, 100), Message: "Company name must be between 2 and 100 characters"},
	{Field: FieldOwnerName, Step: StepCompany, Check: forms.Required(FieldOwnerName), Message: "Owner name is required"},
	{Field: FieldOwnerName, Step: StepCompany, Check: forms.Length(FieldOwnerName, 2, 100), Message: "Owner name must be between 2 and 100 characters"},
	{Field: FieldEmail, Step: StepCompany, Check: forms.Required(FieldEmail), Message: "Email is required"},
	{Field: FieldEmail, Step: StepCompany, Check: forms.Tag(FieldEmail, "email"), Message: "Enter a valid email address"},
	{Field: FieldPhone, Step: StepCompany, Check: forms.Required(FieldPhone), Message: "Phone is required"},
	{Field: FieldPhone, Step: StepCompany, Check: forms.Pattern(FieldPhone, phonePattern), Message: "Phone must be 10 to 15 digits"},
	{Field: FieldAddress, Step: StepCompany, Check: forms.Required(FieldAddress), Message: "Address is required"},
	{Field: FieldAddress, Step: StepCompany, Check: forms.Length(FieldAddress, 5, 300), Message: "Address must be between 5 and 300 characters"},
	{Field: FieldPlan, Step: StepSubscription, Check: forms.Required(FieldPlan), Message: "Select a subscription plan"},
	{Field: FieldPlan, Step: StepSubscription, Check: forms.OneOf(FieldPlan, plans.TermCodes()...), Message: "Unknown subscription plan"},
	{Field: FieldStartDate, Step: StepSubscription, Check: forms.Required(FieldStartDate), Message: "Start date is required"},
	{Field: FieldStartDate, Step: StepSubscription, Check: forms.IsDate(FieldStartDate), Message: "Start date must be a valid date"},
	{Field: FieldEndDate, Step: StepSubscription, Check: forms.Required(FieldEndDate), Message: "End date is required"},
	{Field: FieldEndDate, Step: StepSubscription, Check: forms.IsDate(FieldEndDate), Message: "End date must be a valid date"},
	{Field: FieldEndDate, Step: StepSubscription, Check: forms.DateNotBefore(FieldEndDate, FieldStartDate), Message: "End date cannot be before the start date"},
	{Field: FieldEndDate, Step: StepSubscription, Check: forms.MinSpanDays(FieldStartDate, FieldEndDate, MinSubscriptionDays), Message: "Subscription must last at least 30 days"},
	{Field: FieldStatus, Step: StepSubscription, Check: forms.Required(FieldStatus), Message: "Status is required"},
	{Field: FieldStatus, Step: StepSubscription, Check: forms.OneOf(FieldStatus, string(StatusActive), string(StatusInactive)), Message: "Status must be active or inactive"},
}}

// ParseForm reads the customer form and recomputes the derived end date.
func ParseForm(form url.Values) forms.Values {
	v := forms.Values{}
	for _, f := range formFields {
		v[f] = strings.TrimSpace(form.Get(f))
	}
	v[FieldPlan] = strings.ToLower(v[FieldPlan])
	if v[FieldStatus] == "" {
		v[FieldStatus] = string(StatusActive)
	}
	ApplyDerived(v)
	return v
}

// ApplyDerived overwrites the end date with start + term duration while a
// known plan is selected. The derived value is never taken from the client.
func ApplyDerived(v forms.Values) {
	if _, ok := plans.LookupTerm(v.Get(FieldPlan)); !ok {
		return
	}
	if end, ok := plans.DeriveEndDate(v.Get(FieldPlan), v.Get(FieldStartDate)); ok {
		v[FieldEndDate] = end
		return
	}
	v[FieldEndDate] = ""
}

// EndDateLocked reports whether the end date is derived and read-only.
func EndDateLocked(v forms.Values) bool {
	_, ok := plans.LookupTerm(v.Get(FieldPlan))
	return ok
}

// ValuesOf fills the form from an existing customer.
func ValuesOf(c Customer) forms.Values {
	return forms.Values{
		FieldCompanyName: c.CompanyName,
		FieldOwnerName:   c.OwnerName,
		FieldEmail:       c.Email,
		FieldPhone:       c.Phone,
		FieldAddress:     c.Address,
		FieldPlan:        c.Plan,
		FieldStartDate:   formatDay(c.StartDate),
		FieldEndDate:     formatDay(c.EndDate),
		FieldStatus:      string(c.Status),
	}
}

// Apply copies validated values onto c.
func Apply(c Customer, v forms.Values) Customer {
	c.CompanyName = v.Get(FieldCompanyName)
	c.OwnerName = v.Get(FieldOwnerName)
	c.Email = v.Get(FieldEmail)
	c.Phone = v.Get(FieldPhone)
	c.Address = v.Get(FieldAddress)
	c.Plan = v.Get(FieldPlan)
	c.StartDate, _ = v.Date(FieldStartDate)
	c.EndDate, _ = v.Date(FieldEndDate)
	c.Status = Status(strings.ToLower(v.Get(FieldStatus)))
	return c
}

// StepFields returns the fields collected on step.
func StepFields(step int) []string {
	var out []string
	for _, f := range FormSchema.Fields() {
		for _, r := range FormSchema.Rules {
			if r.Field == f && r.Step == step {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// ParseStep reads the wizard step, defaulting to the first.
func ParseStep(raw string) int {
	if n, err := strconv.Atoi(raw); err == nil && n == StepSubscription {
		return StepSubscription
	}
	return StepCompany
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(forms.DateLayout)
}
