// Package billing summarises platform revenue and lists tenant invoices.
package billing

import (
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

// Invoice statuses.
const (
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
	StatusPending = "Pending"
)

// Statuses lists the valid invoice statuses.
var Statuses = []string{StatusPaid, StatusOverdue, StatusPending}

// Invoice is one tenant invoice.
type Invoice struct {
	ID     string    `yaml:"id" json:"id"`
	Tenant string    `yaml:"tenant" json:"tenant"`
	Amount float64   `yaml:"amount" json:"amount"`
	Status string    `yaml:"status" json:"status"`
	Method string    `yaml:"method" json:"method"`
	Issued time.Time `yaml:"issued" json:"issued"`
	Due    time.Time `yaml:"due" json:"due"`
}

func status(i Invoice) string { return i.Status }

// Schema is the invoice list's filter schema.
var Schema = listview.Schema[Invoice]{
	Searchable: func(i Invoice) []string { return []string{i.ID, i.Tenant, i.Method} },
	Timestamp:  func(i Invoice) time.Time { return i.Issued },
	Categories: []listview.Category[Invoice]{
		listview.FieldEquals(StatusPaid, status),
		listview.FieldEquals(StatusOverdue, status),
		listview.FieldEquals(StatusPending, status),
	},
	Order: func(a, b Invoice) int { return b.Issued.Compare(a.Issued) },
}

// PlanRevenue is the monthly revenue of one plan tier.
type PlanRevenue struct {
	Plan    string  `json:"plan"`
	MRR     float64 `json:"mrr"`
	Tenants int     `json:"tenants"`
}

// Summary holds the billing KPIs.
type Summary struct {
	MRR           float64       `json:"mrr"`
	ARR           float64       `json:"arr"`
	Overdue       float64       `json:"overdue"`
	OverdueCount  int           `json:"overdue_count"`
	RevenueByPlan []PlanRevenue `json:"revenue_by_plan"`
}

// Summarise computes MRR as the sum of tenant MRR, ARR as twelve times MRR
// and the overdue total over invoices. Revenue by plan follows the tier
// order, with unknown tiers appended in first-seen order.
func Summarise(ts []tenants.Tenant, invoices []Invoice) Summary {
	var s Summary
	byPlan := make(map[string]*PlanRevenue)
	var order []string
	for _, tier := range plans.Tiers {
		byPlan[tier] = &PlanRevenue{Plan: tier}
		order = append(order, tier)
	}
	for _, t := range ts {
		s.MRR += t.MRR
		pr, ok := byPlan[t.Plan]
		if !ok {
			pr = &PlanRevenue{Plan: t.Plan}
			byPlan[t.Plan] = pr
			order = append(order, t.Plan)
		}
		pr.MRR += t.MRR
		pr.Tenants++
	}
	s.ARR = s.MRR * 12
	for _, inv := range invoices {
		if inv.Status == StatusOverdue {
			s.Overdue += inv.Amount
			s.OverdueCount++
		}
	}
	for _, p := range order {
		s.RevenueByPlan = append(s.RevenueByPlan, *byPlan[p])
	}
	return s
}
