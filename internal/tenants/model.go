// Package tenants lists the organisations hosted on the platform.
package tenants

import (
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
)

// Tenant statuses.
const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusSuspended = "Suspended"
)

// Statuses lists the valid tenant statuses.
var Statuses = []string{StatusActive, StatusInactive, StatusSuspended}

// Tenant is one hosted organisation.
type Tenant struct {
	ID        string    `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	Admin     string    `yaml:"admin" json:"admin"`
	Plan      string    `yaml:"plan" json:"plan"`
	Status    string    `yaml:"status" json:"status"`
	Users     int       `yaml:"users" json:"users"`
	DBSizeGB  float64   `yaml:"db_size_gb" json:"db_size_gb"`
	MRR       float64   `yaml:"mrr" json:"mrr"`
	CreatedOn time.Time `yaml:"created_on" json:"created_on"`
}

func status(t Tenant) string { return t.Status }

// Schema is the tenant directory's filter schema.
var Schema = listview.Schema[Tenant]{
	Searchable: func(t Tenant) []string { return []string{t.Name, t.Admin, t.Plan} },
	Timestamp:  func(t Tenant) time.Time { return t.CreatedOn },
	Categories: []listview.Category[Tenant]{
		listview.FieldEquals(StatusActive, status),
		listview.FieldEquals(StatusInactive, status),
		listview.FieldEquals(StatusSuspended, status),
	},
}
