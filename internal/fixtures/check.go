package fixtures

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/billing"
	"github.com/odyssey-erp/odyssey-console/internal/payments"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/support"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

// Problem describes one inconsistency found in a dataset.
type Problem struct {
	File    string `json:"file"`
	Record  string `json:"record"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s[%s]: %s", p.File, p.Record, p.Message)
}

var (
	paymentStatuses = []string{payments.StatusPending, payments.StatusSuccess, payments.StatusFailed}
	logLevels       = []string{"info", "warn", "error"}
	billingTypes    = []plans.BillingType{plans.BillingMonthly, plans.BillingYearly, plans.BillingBoth}
)

type checker struct {
	problems []Problem
}

func (c *checker) add(file, record, format string, args ...any) {
	c.problems = append(c.problems, Problem{File: file, Record: record, Message: fmt.Sprintf(format, args...)})
}

// unique reports the first duplicate key of each record as a problem.
func (c *checker) unique(file, key string, seen map[string]struct{}) {
	if _, dup := seen[key]; dup {
		c.add(file, key, "duplicate id")
		return
	}
	seen[key] = struct{}{}
}

// Check validates cross-record consistency. An empty result means the dataset
// is safe to serve.
func Check(ds Dataset) []Problem {
	c := &checker{}

	seen := map[string]struct{}{}
	for _, cu := range ds.Customers {
		id := strconv.FormatInt(cu.ID, 10)
		c.unique(CustomersFile, id, seen)
		if strings.TrimSpace(cu.CompanyName) == "" {
			c.add(CustomersFile, id, "company_name is required")
		}
		if !cu.Status.Valid() {
			c.add(CustomersFile, id, "unknown status %q", cu.Status)
		}
		if _, ok := plans.LookupTerm(cu.Plan); !ok {
			c.add(CustomersFile, id, "unknown plan term %q", cu.Plan)
		}
		if cu.EndDate.Before(cu.StartDate) {
			c.add(CustomersFile, id, "end_date precedes start_date")
		}
	}

	seen = map[string]struct{}{}
	for _, t := range ds.Tenants {
		c.unique(TenantsFile, t.ID, seen)
		if !slices.Contains(tenants.Statuses, t.Status) {
			c.add(TenantsFile, t.ID, "unknown status %q", t.Status)
		}
		if !slices.Contains(plans.Tiers, t.Plan) {
			c.add(TenantsFile, t.ID, "unknown plan %q", t.Plan)
		}
	}

	seen = map[string]struct{}{}
	for _, p := range ds.Payments {
		id := strconv.FormatInt(p.ID, 10)
		c.unique(PaymentsFile, id, seen)
		if !slices.Contains(paymentStatuses, p.Status) {
			c.add(PaymentsFile, id, "unknown status %q", p.Status)
		}
		if p.Amount <= 0 {
			c.add(PaymentsFile, id, "amount must be positive")
		}
	}

	seen = map[string]struct{}{}
	for _, inv := range ds.Invoices {
		c.unique(InvoicesFile, inv.ID, seen)
		if !slices.Contains(billing.Statuses, inv.Status) {
			c.add(InvoicesFile, inv.ID, "unknown status %q", inv.Status)
		}
		if inv.Due.Before(inv.Issued) {
			c.add(InvoicesFile, inv.ID, "due precedes issued")
		}
	}

	seen = map[string]struct{}{}
	for _, t := range ds.Tickets {
		c.unique(TicketsFile, t.ID, seen)
		if !slices.Contains(support.Statuses, t.Status) {
			c.add(TicketsFile, t.ID, "unknown status %q", t.Status)
		}
		if !slices.Contains(support.Priorities, t.Priority) {
			c.add(TicketsFile, t.ID, "unknown priority %q", t.Priority)
		}
	}

	seen = map[string]struct{}{}
	for _, p := range ds.Plans {
		c.unique(PlansFile, p.Key(), seen)
		if !slices.Contains(billingTypes, p.BillingType) {
			c.add(PlansFile, p.Name, "unknown billing_type %q", p.BillingType)
		}
	}

	for i, e := range ds.Activity {
		if !slices.Contains(logLevels, e.Level) {
			c.add(ActivityFile, strconv.Itoa(i), "unknown level %q", e.Level)
		}
	}
	return c.problems
}
