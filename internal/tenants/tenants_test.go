package tenants

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/listview"
)

func seedTenants() []Tenant {
	on := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []Tenant{
		{ID: "t_1001", Name: "Acme Retail", Admin: "alice@acme.io", Plan: "Pro", Status: StatusActive, Users: 42, DBSizeGB: 3.2, MRR: 1299, CreatedOn: on("2024-02-11")},
		{ID: "t_1002", Name: "Globex Corp", Admin: "hank@globex.com", Plan: "Elite", Status: StatusSuspended, Users: 130, DBSizeGB: 12.5, MRR: 4999, CreatedOn: on("2023-11-03")},
		{ID: "t_1003", Name: "Initech", Admin: "peter@initech.com", Plan: "Basic", Status: StatusInactive, Users: 8, DBSizeGB: 0.7, MRR: 199, CreatedOn: on("2024-05-20")},
	}
}

func TestTenantSearchCoversPlan(t *testing.T) {
	q := listview.NewQuery(20)
	q.Search = "elite"
	res := Schema.Run(seedTenants(), q)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Globex Corp", res.Items[0].Name)
}

func TestTenantStatusCategories(t *testing.T) {
	for _, status := range Statuses {
		q := listview.NewQuery(20)
		q.Category = status
		res := Schema.Run(seedTenants(), q)
		require.Equal(t, 1, res.Total, status)
		assert.Equal(t, status, res.Items[0].Status)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, seedTenants()[:1]))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{"t_1001", "Acme Retail", "alice@acme.io", "Pro", "Active", "42", "3.2", "1299.00", "2024-02-11"}, records[1])
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo := NewRepository(seedTenants())
	list := repo.List()
	list[0].Name = "changed"
	assert.Equal(t, "Acme Retail", repo.List()[0].Name)
}
