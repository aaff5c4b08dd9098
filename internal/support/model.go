// Package support lists tenant support tickets.
package support

import (
	"time"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
)

// Ticket statuses.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

// Statuses lists the valid ticket statuses.
var Statuses = []string{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// Priorities lists the valid ticket priorities, lowest first.
var Priorities = []string{"Low", "Medium", "High", "Critical"}

// Ticket is one support request raised by a tenant.
type Ticket struct {
	ID       string    `yaml:"id" json:"id"`
	Tenant   string    `yaml:"tenant" json:"tenant"`
	Subject  string    `yaml:"subject" json:"subject"`
	Priority string    `yaml:"priority" json:"priority"`
	Status   string    `yaml:"status" json:"status"`
	Created  time.Time `yaml:"created" json:"created"`
	SLA      string    `yaml:"sla" json:"sla"`
	Assignee string    `yaml:"assignee" json:"assignee"`
}

func status(t Ticket) string { return t.Status }

// Schema is the ticket queue's filter schema.
var Schema = listview.Schema[Ticket]{
	Searchable: func(t Ticket) []string { return []string{t.ID, t.Tenant, t.Subject, t.Assignee} },
	Timestamp:  func(t Ticket) time.Time { return t.Created },
	Categories: []listview.Category[Ticket]{
		listview.FieldEquals(StatusOpen, status),
		listview.FieldEquals(StatusInProgress, status),
		listview.FieldEquals(StatusResolved, status),
		listview.FieldEquals(StatusClosed, status),
	},
}

// Active reports whether the ticket still needs work.
func (t Ticket) Active() bool { return t.Status == StatusOpen || t.Status == StatusInProgress }
