package plans

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/forms"
)

// Form field names.
const (
	FieldName         = "name"
	FieldBillingType  = "billing_type"
	FieldMonthlyPrice = "monthly_price"
	FieldYearlyPrice  = "yearly_price"
	FieldProductLimit = "product_limit"
	FieldFeatures     = "features"
)

// FormInput is a posted plan form.
type FormInput struct {
	Values   forms.Values
	Features []Feature
}

// NewFormInput returns the blank form.
func NewFormInput() FormInput {
	return FormInput{
		Values:   forms.Values{FieldName: "Basic", FieldBillingType: string(BillingBoth)},
		Features: []Feature{{Included: true}},
	}
}

// ParseForm reads the plan form. Feature rows arrive as parallel
// feature_text values with feature_included_<n> checkboxes.
func ParseForm(form url.Values) FormInput {
	in := FormInput{Values: forms.Values{}}
	for _, f := range []string{FieldName, FieldBillingType, FieldMonthlyPrice, FieldYearlyPrice, FieldProductLimit} {
		in.Values[f] = strings.TrimSpace(form.Get(f))
	}
	for i, text := range form["feature_text"] {
		in.Features = append(in.Features, Feature{
			Text:     strings.TrimSpace(text),
			Included: form.Get(fmt.Sprintf("feature_included_%d", i)) != "",
		})
	}
	in.syncFeatures()
	return in
}

// AddFeature appends an empty row.
func (in *FormInput) AddFeature() {
	in.Features = append(in.Features, Feature{Included: true})
	in.syncFeatures()
}

// RemoveFeature drops row i. The last remaining row is kept.
func (in *FormInput) RemoveFeature(i int) {
	if i < 0 || i >= len(in.Features) || len(in.Features) == 1 {
		return
	}
	in.Features = append(in.Features[:i], in.Features[i+1:]...)
	in.syncFeatures()
}

// Discount previews the yearly saving for the posted prices.
func (in FormInput) Discount() int {
	m, _ := strconv.ParseFloat(in.Values.Get(FieldMonthlyPrice), 64)
	y, _ := strconv.ParseFloat(in.Values.Get(FieldYearlyPrice), 64)
	return YearlyDiscount(m, y)
}

func (in *FormInput) syncFeatures() {
	for k := range in.Values {
		if strings.HasPrefix(k, "feature_") {
			delete(in.Values, k)
		}
	}
	in.Values[FieldFeatures] = strconv.Itoa(len(in.Features))
	for i, f := range in.Features {
		in.Values[featureKey(i)] = f.Text
	}
}

func featureKey(i int) string { return "feature_" + strconv.Itoa(i) }

// Plan converts validated input into a catalog entry.
func (in FormInput) Plan() Plan {
	p := Plan{
		Name:        canonicalTier(in.Values.Get(FieldName)),
		BillingType: BillingType(strings.ToLower(in.Values.Get(FieldBillingType))),
		Features:    append([]Feature(nil), in.Features...),
	}
	if p.OffersMonthly() {
		p.MonthlyPrice, _ = strconv.ParseFloat(in.Values.Get(FieldMonthlyPrice), 64)
	}
	if p.OffersYearly() {
		p.YearlyPrice, _ = strconv.ParseFloat(in.Values.Get(FieldYearlyPrice), 64)
	}
	p.ProductLimit, _ = strconv.Atoi(in.Values.Get(FieldProductLimit))
	return p
}

func canonicalTier(name string) string {
	for _, t := range Tiers {
		if strings.EqualFold(t, name) {
			return t
		}
	}
	return name
}

func billingIsNot(t BillingType) func(forms.Values) bool {
	return func(v forms.Values) bool { return !strings.EqualFold(v.Get(FieldBillingType), string(t)) }
}

func featuresDescribed(v forms.Values) bool {
	n, _ := strconv.Atoi(v.Get(FieldFeatures))
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if v.Get(featureKey(i)) == "" {
			return false
		}
	}
	return true
}

// NewFormSchema validates the plan form. exists reports tiers already in
// the catalog.
func NewFormSchema(exists func(name string) bool) forms.Schema {
	rules := append([]forms.Rule(nil), formRules...)
	rules = append(rules, forms.Rule{
		Field:   FieldName,
		Check:   func(v forms.Values) bool { return v.Get(FieldName) == "" || !exists(v.Get(FieldName)) },
		Message: "A plan with this name already exists",
	})
	return forms.Schema{Rules: rules}
}

var formRules = []forms.Rule{
	{Field: FieldName, Check: forms.Required(FieldName), Message: "Plan name is required"},
	{Field: FieldName, Check: forms.OneOf(FieldName, Tiers...), Message: "Plan name must be Basic, Pro or Elite"},
	{Field: FieldBillingType, Check: forms.Required(FieldBillingType), Message: "Billing type is required"},
	{Field: FieldBillingType, Check: forms.OneOf(FieldBillingType, string(BillingMonthly), string(BillingYearly), string(BillingBoth)), Message: "Unknown billing type"},
	{Field: FieldMonthlyPrice, Check: forms.When(billingIsNot(BillingYearly), forms.Required(FieldMonthlyPrice)), Message: "Valid monthly price is required"},
	{Field: FieldMonthlyPrice, Check: forms.When(billingIsNot(BillingYearly), forms.Number(FieldMonthlyPrice, 0, true)), Message: "Valid monthly price is required"},
	{Field: FieldYearlyPrice, Check: forms.When(billingIsNot(BillingMonthly), forms.Required(FieldYearlyPrice)), Message: "Valid yearly price is required"},
	{Field: FieldYearlyPrice, Check: forms.When(billingIsNot(BillingMonthly), forms.Number(FieldYearlyPrice, 0, true)), Message: "Valid yearly price is required"},
	{Field: FieldProductLimit, Check: forms.Integer(FieldProductLimit, 0), Message: "Product limit must be a whole number"},
	{Field: FieldFeatures, Check: featuresDescribed, Message: "All features must have descriptions"},
}
