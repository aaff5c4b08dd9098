package plans

import (
	"slices"
	"strings"
	"time"
)

// Duration is a calendar offset. Years and months follow time.AddDate, so a
// yearly term started on 2024-01-10 ends on 2025-01-10 across the leap day.
type Duration struct {
	Years  int
	Months int
	Days   int
}

// Term is a subscription term a customer can be registered on.
type Term struct {
	Code     string
	Label    string
	Duration Duration
	// NominalDays is the advertised length shown next to the term.
	NominalDays int
}

var terms = []Term{
	{Code: "free", Label: "Free", Duration: Duration{Days: 30}, NominalDays: 30},
	{Code: "monthly", Label: "Monthly", Duration: Duration{Days: 30}, NominalDays: 30},
	{Code: "quarterly", Label: "Quarterly", Duration: Duration{Days: 90}, NominalDays: 90},
	{Code: "yearly", Label: "Yearly", Duration: Duration{Years: 1}, NominalDays: 365},
}

// Terms returns every term in display order.
func Terms() []Term {
	return slices.Clone(terms)
}

// TermCodes returns the lookup codes of every term.
func TermCodes() []string {
	codes := make([]string, 0, len(terms))
	for _, t := range terms {
		codes = append(codes, t.Code)
	}
	return codes
}

// LookupTerm finds a term by code or label, ignoring case.
func LookupTerm(code string) (Term, bool) {
	code = strings.TrimSpace(code)
	for _, t := range terms {
		if strings.EqualFold(t.Code, code) || strings.EqualFold(t.Label, code) {
			return t, true
		}
	}
	return Term{}, false
}

// ComputeEndDate adds d to start.
func ComputeEndDate(start time.Time, d Duration) time.Time {
	return start.AddDate(d.Years, d.Months, d.Days)
}

// DeriveEndDate computes the end date for a term code and a YYYY-MM-DD start
// date. It reports false when either input is unusable.
func DeriveEndDate(code, start string) (string, bool) {
	term, ok := LookupTerm(code)
	if !ok {
		return "", false
	}
	s, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return "", false
	}
	return ComputeEndDate(s, term.Duration).Format(dateLayout), true
}

const dateLayout = "2006-01-02"
