// Package plans holds the subscription terms customers are registered on and
// the catalog of priced plan tiers.
package plans

import (
	"errors"
	"math"
	"strings"
)

var (
	// ErrNotFound is returned for an unknown plan.
	ErrNotFound = errors.New("plan not found")
	// ErrAlreadyExists is returned when a tier is already in the catalog.
	ErrAlreadyExists = errors.New("plan already exists")
)

// BillingType selects which prices a plan offers.
type BillingType string

const (
	BillingMonthly BillingType = "monthly"
	BillingYearly  BillingType = "yearly"
	BillingBoth    BillingType = "both"
)

// Tiers lists the plan names the catalog accepts, in display order.
var Tiers = []string{"Basic", "Pro", "Elite"}

// Feature is one line of a plan's feature list.
type Feature struct {
	Text     string `yaml:"text" json:"text"`
	Included bool   `yaml:"included" json:"included"`
}

// Plan is a priced catalog entry.
type Plan struct {
	Name         string      `yaml:"name" json:"name"`
	BillingType  BillingType `yaml:"billing_type" json:"billing_type"`
	MonthlyPrice float64     `yaml:"monthly_price" json:"monthly_price"`
	YearlyPrice  float64     `yaml:"yearly_price" json:"yearly_price"`
	ProductLimit int         `yaml:"product_limit" json:"product_limit"`
	Popular      bool        `yaml:"popular" json:"popular"`
	Features     []Feature   `yaml:"features" json:"features"`
}

// Key is the catalog lookup key.
func (p Plan) Key() string { return strings.ToLower(p.Name) }

// OffersMonthly reports whether a monthly price applies.
func (p Plan) OffersMonthly() bool { return p.BillingType != BillingYearly }

// OffersYearly reports whether a yearly price applies.
func (p Plan) OffersYearly() bool { return p.BillingType != BillingMonthly }

// Price returns the price shown for a billing cycle and whether the plan
// offers that cycle.
func (p Plan) Price(cycle BillingType) (float64, bool) {
	if cycle == BillingYearly {
		return p.YearlyPrice, p.OffersYearly()
	}
	return p.MonthlyPrice, p.OffersMonthly()
}

// Discount is the yearly saving in whole percent.
func (p Plan) Discount() int { return YearlyDiscount(p.MonthlyPrice, p.YearlyPrice) }

// YearlyDiscount returns round((12m - y) / 12m * 100), or 0 unless both
// prices are set.
func YearlyDiscount(monthly, yearly float64) int {
	if monthly <= 0 || yearly <= 0 {
		return 0
	}
	annual := monthly * 12
	return int(math.Round((annual - yearly) / annual * 100))
}
