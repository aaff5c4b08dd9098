// Package payments reviews incoming customer payments.
package payments

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
)

var (
	// ErrNotFound is returned for an unknown payment.
	ErrNotFound = errors.New("payment not found")
	// ErrAlreadyReviewed is returned when a payment was already accepted or rejected.
	ErrAlreadyReviewed = errors.New("payment already reviewed")
)

// Payment statuses.
const (
	StatusPending = "Pending"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// ProcessingFeeRate is the card processor's share of each payment.
const ProcessingFeeRate = 0.029

// Payment is one customer payment awaiting or past review.
type Payment struct {
	ID            int64     `yaml:"id" json:"id"`
	CustomerName  string    `yaml:"customer_name" json:"customer_name"`
	Amount        float64   `yaml:"amount" json:"amount"`
	Date          time.Time `yaml:"date" json:"date"`
	Method        string    `yaml:"method" json:"method"`
	TransactionID string    `yaml:"transaction_id" json:"transaction_id"`
	Status        string    `yaml:"status" json:"status"`
	ReviewedAt    time.Time `yaml:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	ReviewRef     string    `yaml:"review_ref,omitempty" json:"review_ref,omitempty"`
}

// Fee returns the processing fee rounded to cents.
func (p Payment) Fee() float64 { return roundCents(p.Amount * ProcessingFeeRate) }

// Net returns the amount after the processing fee, rounded to cents.
func (p Payment) Net() float64 { return roundCents(p.Amount - p.Amount*ProcessingFeeRate) }

// Initial returns the first letter of the customer name for the avatar.
func (p Payment) Initial() string {
	if p.CustomerName == "" {
		return "?"
	}
	return strings.ToUpper(p.CustomerName[:1])
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

// Tab is one status tab of the review page.
type Tab struct {
	Key    string
	Label  string
	Status string
}

// Tabs lists the review tabs in display order; an empty status means all.
var Tabs = []Tab{
	{Key: "all", Label: "All Payments"},
	{Key: "success", Label: "Payment Success", Status: StatusSuccess},
	{Key: "failed", Label: "Payment Failed", Status: StatusFailed},
	{Key: "pending", Label: "Pending Review", Status: StatusPending},
}

// TabByKey resolves a tab key, defaulting to all.
func TabByKey(key string) Tab {
	for _, t := range Tabs {
		if strings.EqualFold(t.Key, key) {
			return t
		}
	}
	return Tabs[0]
}

func status(p Payment) string { return p.Status }

// Schema is the payment list's filter schema. Tabs map onto its categories.
var Schema = listview.Schema[Payment]{
	Searchable: func(p Payment) []string { return []string{p.CustomerName, p.TransactionID, p.Method} },
	Timestamp:  func(p Payment) time.Time { return p.Date },
	Categories: []listview.Category[Payment]{
		listview.FieldEquals(StatusSuccess, status),
		listview.FieldEquals(StatusFailed, status),
		listview.FieldEquals(StatusPending, status),
	},
	Order: func(a, b Payment) int { return b.Date.Compare(a.Date) },
}

// Counts returns the number of payments per tab key.
func Counts(all []Payment) map[string]int {
	counts := map[string]int{"all": len(all)}
	for _, p := range all {
		for _, t := range Tabs[1:] {
			if p.Status == t.Status {
				counts[t.Key]++
			}
		}
	}
	return counts
}
