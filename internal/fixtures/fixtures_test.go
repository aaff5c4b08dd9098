package fixtures

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/customers"
)

func TestEmbeddedFixturesLoadCleanly(t *testing.T) {
	ds, err := Load(Embedded())
	require.NoError(t, err)

	assert.Len(t, ds.Customers, 12)
	assert.Len(t, ds.Payments, 12)
	assert.NotEmpty(t, ds.Tenants)
	assert.NotEmpty(t, ds.Invoices)
	assert.NotEmpty(t, ds.Tickets)
	assert.Len(t, ds.Plans, 3)
	assert.NotEmpty(t, ds.Stats.Usage)
	assert.Empty(t, Check(ds))

	first := ds.Customers[0]
	assert.Equal(t, "Sunrise Developers", first.CompanyName)
	assert.Equal(t, customers.StatusActive, first.Status)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), first.StartDate)
}

func validFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, name := range []string{CustomersFile, TenantsFile, PaymentsFile, InvoicesFile, TicketsFile, PlansFile, ActivityFile} {
		fsys[name] = &fstest.MapFile{Data: []byte("[]\n")}
	}
	fsys[StatsFile] = &fstest.MapFile{Data: []byte("active_sessions: 1\n")}
	return fsys
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fsys := validFS()
	fsys[TenantsFile] = &fstest.MapFile{Data: []byte("- {id: t_1, name: A, colour: red}\n")}

	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), TenantsFile)
}

func TestLoadReportsMissingFile(t *testing.T) {
	fsys := validFS()
	delete(fsys, PlansFile)

	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), PlansFile)
}

func TestLoadAcceptsEmptyFile(t *testing.T) {
	fsys := validFS()
	fsys[ActivityFile] = &fstest.MapFile{Data: nil}

	ds, err := Load(fsys)
	require.NoError(t, err)
	assert.Empty(t, ds.Activity)
	assert.Equal(t, 1, ds.Stats.ActiveSessions)
}

func TestCheckFindsProblems(t *testing.T) {
	ds, err := Load(Embedded())
	require.NoError(t, err)

	dup := ds.Customers[0]
	dup.Plan = "weekly"
	dup.EndDate = dup.StartDate.AddDate(0, 0, -1)
	ds.Customers = append(ds.Customers, dup)
	ds.Tenants[0].Status = "Archived"
	ds.Invoices[0].Due = ds.Invoices[0].Issued.AddDate(0, 0, -3)

	problems := Check(ds)
	var messages []string
	for _, p := range problems {
		messages = append(messages, p.String())
	}
	assert.Contains(t, messages, "customers.yaml[1]: duplicate id")
	assert.Contains(t, messages, `customers.yaml[1]: unknown plan term "weekly"`)
	assert.Contains(t, messages, "customers.yaml[1]: end_date precedes start_date")
	assert.Contains(t, messages, `tenants.yaml[t_1001]: unknown status "Archived"`)
	assert.Contains(t, messages, "invoices.yaml[INV-24011]: due precedes issued")
}
