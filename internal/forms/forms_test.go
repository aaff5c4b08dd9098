package forms

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digits = regexp.MustCompile(`^[0-9]{10,15}$`)

func subscriptionSchema() Schema {
	return Schema{Rules: []Rule{
		{Field: "company", Step: 1, Check: Required("company"), Message: "Company name is required"},
		{Field: "company", Step: 1, Check: Length("company", 2, 100), Message: "Company name must be 2-100 characters"},
		{Field: "email", Step: 1, Check: Required("email"), Message: "Email is required"},
		{Field: "email", Step: 1, Check: Tag("email", "email"), Message: "Enter a valid email"},
		{Field: "phone", Step: 1, Check: Pattern("phone", digits), Message: "Phone must be 10-15 digits"},
		{Field: "start", Step: 2, Check: Required("start"), Message: "Start date is required"},
		{Field: "end", Step: 2, Check: Required("end"), Message: "End date is required"},
		{Field: "end", Step: 2, Check: DateNotBefore("end", "start"), Message: "End date cannot be before start date"},
		{Field: "end", Step: 2, Check: MinSpanDays("start", "end", 30), Message: "Subscription must be at least 30 days"},
	}}
}

func validValues() Values {
	return Values{
		"company": "Acme Corp",
		"email":   "owner@acme.test",
		"phone":   "08123456789",
		"start":   "2024-01-01",
		"end":     "2024-02-15",
	}
}

func TestValidatePassesCompleteForm(t *testing.T) {
	assert.Empty(t, subscriptionSchema().Validate(validValues()))
}

func TestMinimumSpanRejectedRegardlessOfPlan(t *testing.T) {
	for _, plan := range []string{"", "monthly", "yearly"} {
		v := validValues()
		v["plan"] = plan
		v["end"] = "2024-01-15"
		errs := subscriptionSchema().Validate(v)
		assert.Equal(t, "Subscription must be at least 30 days", errs["end"], plan)
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	v := validValues()
	v["end"] = "2023-12-01"
	errs := subscriptionSchema().Validate(v)
	assert.Equal(t, "End date cannot be before start date", errs["end"])

	v["company"] = ""
	errs = subscriptionSchema().Validate(v)
	assert.Equal(t, "Company name is required", errs["company"])
}

func TestFormatChecksPassOnEmptyInput(t *testing.T) {
	v := Values{}
	assert.True(t, Length("x", 2, 5)(v))
	assert.True(t, Pattern("x", digits)(v))
	assert.True(t, Tag("x", "email")(v))
	assert.True(t, OneOf("x", "a")(v))
	assert.True(t, Number("x", 0, true)(v))
	assert.True(t, Integer("x", 0)(v))
	assert.True(t, IsDate("x")(v))
	assert.False(t, Required("x")(v))
}

func TestChecks(t *testing.T) {
	assert.False(t, Tag("e", "email")(Values{"e": "not-an-email"}))
	assert.True(t, OneOf("p", "Monthly", "Yearly")(Values{"p": "yearly"}))
	assert.False(t, OneOf("p", "Monthly")(Values{"p": "weekly"}))
	assert.False(t, Number("n", 0, true)(Values{"n": "0"}))
	assert.True(t, Number("n", 0, false)(Values{"n": "0"}))
	assert.False(t, Number("n", 0, false)(Values{"n": "abc"}))
	assert.False(t, Integer("n", 0)(Values{"n": "1.5"}))
	assert.False(t, Length("s", 2, 3)(Values{"s": "abcd"}))
	assert.True(t, Length("s", 2, 3)(Values{"s": "äöü"}))
	assert.False(t, IsDate("d")(Values{"d": "15/01/2024"}))

	yearlyOnly := func(v Values) bool { return v.Get("type") != "yearly" }
	check := When(yearlyOnly, Required("monthly"))
	assert.True(t, check(Values{"type": "yearly"}))
	assert.False(t, check(Values{"type": "monthly"}))
}

func TestValidateFieldAndStep(t *testing.T) {
	s := subscriptionSchema()
	v := validValues()
	v["email"] = "nope"

	msg, ok := s.ValidateField("email", v)
	assert.False(t, ok)
	assert.Equal(t, "Enter a valid email", msg)

	_, ok = s.ValidateField("company", v)
	assert.True(t, ok)

	step1 := s.ValidateStep(1, v)
	assert.Contains(t, step1, "email")
	v["end"] = ""
	assert.NotContains(t, s.ValidateStep(1, v), "end")
	assert.Contains(t, s.ValidateStep(2, v), "end")
}

func TestFieldsInDeclarationOrder(t *testing.T) {
	assert.Equal(t, []string{"company", "email", "phone", "start", "end"}, subscriptionSchema().Fields())
}

func TestSubmitNeverSavesInvalidInput(t *testing.T) {
	v := validValues()
	v["company"] = ""
	sub := NewSubmission(v)
	called := false
	err := sub.Submit(context.Background(), subscriptionSchema(), func(context.Context, Values) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
	assert.Equal(t, Editing, sub.Phase)
	assert.Equal(t, "Company name is required", sub.Errors["company"])
}

func TestSubmitFailureReturnsToEditing(t *testing.T) {
	boom := errors.New("network down")
	sub := NewSubmission(validValues())
	err := sub.Submit(context.Background(), subscriptionSchema(), func(context.Context, Values) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Editing, sub.Phase)
	assert.NotEmpty(t, sub.Notice)
	assert.Equal(t, validValues(), sub.Values)

	err = sub.Submit(context.Background(), subscriptionSchema(), func(context.Context, Values) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, Succeeded, sub.Phase)
	assert.Empty(t, sub.Notice)
}

func TestSubmitObservesSubmittingPhase(t *testing.T) {
	sub := NewSubmission(validValues())
	var seen Phase
	require.NoError(t, sub.Submit(context.Background(), subscriptionSchema(), func(context.Context, Values) error {
		seen = sub.Phase
		return nil
	}))
	assert.Equal(t, Submitting, seen)
	assert.Equal(t, "submitting", seen.String())
}
