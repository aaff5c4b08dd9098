// Package customers manages the customer accounts subscribed to the CRM:
// the filtered directory, the two-step registration, and account actions.
package customers

import (
	"errors"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
)

var (
	// ErrNotFound is returned for an unknown customer.
	ErrNotFound = errors.New("customer not found")
	// ErrInvalidStatus is returned for a status outside the allowed set.
	ErrInvalidStatus = errors.New("invalid customer status")
)

// Status is the account state of a customer.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Label is the capitalised status for display.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// High value and frequent thresholds of the directory filters.
const (
	HighValueSpend = 5000
	FrequentOrders = 10
)

// Customer is one subscribed company.
type Customer struct {
	ID             int64     `yaml:"id" json:"id"`
	CompanyName    string    `yaml:"company_name" json:"company_name"`
	OwnerName      string    `yaml:"owner_name" json:"owner_name"`
	Email          string    `yaml:"email" json:"email"`
	Phone          string    `yaml:"phone" json:"phone"`
	Address        string    `yaml:"address" json:"address"`
	Plan           string    `yaml:"plan" json:"plan"`
	StartDate      time.Time `yaml:"start_date" json:"start_date"`
	EndDate        time.Time `yaml:"end_date" json:"end_date"`
	Status         Status    `yaml:"status" json:"status"`
	EmployeesCount int       `yaml:"employees_count" json:"employees_count"`
	TotalSpend     float64   `yaml:"total_spend" json:"total_spend"`
	OrderCount     int       `yaml:"order_count" json:"order_count"`
	JoinedAt       time.Time `yaml:"joined_at" json:"joined_at"`
	ActivityLog    []string  `yaml:"activity_log" json:"activity_log"`
}

// PlanLabel returns the display label of the subscription term.
func (c Customer) PlanLabel() string {
	if t, ok := plans.LookupTerm(c.Plan); ok {
		return t.Label
	}
	return c.Plan
}

// Schema is the customer directory's filter schema.
var Schema = listview.Schema[Customer]{
	Searchable: func(c Customer) []string {
		return []string{c.CompanyName, c.OwnerName, c.Email, c.Phone}
	},
	Timestamp: func(c Customer) time.Time { return c.JoinedAt },
	Categories: []listview.Category[Customer]{
		listview.FieldEquals("Active", func(c Customer) string { return string(c.Status) }),
		listview.FieldEquals("Inactive", func(c Customer) string { return string(c.Status) }),
		listview.Above("High Value", func(c Customer) float64 { return c.TotalSpend }, HighValueSpend),
		listview.Above("Frequent", func(c Customer) float64 { return float64(c.OrderCount) }, FrequentOrders),
	},
}
