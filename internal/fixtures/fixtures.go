// Package fixtures loads the seed collections the console serves in place of
// a remote backend.
package fixtures

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odyssey-erp/odyssey-console/internal/billing"
	"github.com/odyssey-erp/odyssey-console/internal/customers"
	"github.com/odyssey-erp/odyssey-console/internal/dashboard"
	"github.com/odyssey-erp/odyssey-console/internal/payments"
	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/support"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

//go:embed data/*.yaml
var embedded embed.FS

// Fixture file names, relative to the fixture root.
const (
	CustomersFile = "customers.yaml"
	TenantsFile   = "tenants.yaml"
	PaymentsFile  = "payments.yaml"
	InvoicesFile  = "invoices.yaml"
	TicketsFile   = "tickets.yaml"
	PlansFile     = "plans.yaml"
	ActivityFile  = "activity.yaml"
	StatsFile     = "stats.yaml"
)

// Dataset holds every seed collection.
type Dataset struct {
	Customers []customers.Customer
	Tenants   []tenants.Tenant
	Payments  []payments.Payment
	Invoices  []billing.Invoice
	Tickets   []support.Ticket
	Plans     []plans.Plan
	Activity  []dashboard.LogEntry
	Stats     dashboard.Stats
}

// Embedded returns the fixture files compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source returns dir as a filesystem, or the embedded fixtures when dir is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// Load decodes every fixture file from fsys. Unknown keys are rejected.
func Load(fsys fs.FS) (Dataset, error) {
	var ds Dataset
	files := []struct {
		name   string
		target any
	}{
		{CustomersFile, &ds.Customers},
		{TenantsFile, &ds.Tenants},
		{PaymentsFile, &ds.Payments},
		{InvoicesFile, &ds.Invoices},
		{TicketsFile, &ds.Tickets},
		{PlansFile, &ds.Plans},
		{ActivityFile, &ds.Activity},
		{StatsFile, &ds.Stats},
	}
	for _, f := range files {
		if err := decodeFile(fsys, f.name, f.target); err != nil {
			return Dataset{}, err
		}
	}
	return ds, nil
}

func decodeFile(fsys fs.FS, name string, target any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
