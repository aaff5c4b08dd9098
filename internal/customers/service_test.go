package customers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/backend"
	"github.com/odyssey-erp/odyssey-console/internal/listview"
)

func seedCustomers() []Customer {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []Customer{
		{ID: 1, CompanyName: "Sunrise Developers", OwnerName: "Rahul Verma", Email: "rahul@sunrise.com", Phone: "9876543210", Plan: "yearly", Status: StatusActive, TotalSpend: 12000, OrderCount: 4, JoinedAt: day("2024-01-10")},
		{ID: 2, CompanyName: "BlueHill Properties", OwnerName: "Karan Mehta", Email: "karan@bluehill.com", Phone: "9988776655", Plan: "monthly", Status: StatusInactive, TotalSpend: 800, OrderCount: 14, JoinedAt: day("2024-02-03")},
		{ID: 3, CompanyName: "Skyline Group", OwnerName: "Rohit Sharma", Email: "rohit@skyline.com", Phone: "9123456780", Plan: "free", Status: StatusActive, TotalSpend: 0, OrderCount: 0, JoinedAt: day("2024-03-15")},
	}
}

type recordingGateway struct {
	calls []backend.Call
	err   error
}

func (g *recordingGateway) Send(_ context.Context, c backend.Call) error {
	g.calls = append(g.calls, c)
	return g.err
}

func newTestService(t *testing.T, gw backend.Gateway) *Service {
	t.Helper()
	repo, err := NewMemoryRepository(seedCustomers())
	require.NoError(t, err)
	svc := NewService(repo, gw, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestDirectoryCategories(t *testing.T) {
	svc := newTestService(t, &recordingGateway{})
	count := func(category string) int {
		q := listview.NewQuery(20)
		q.Category = category
		return Schema.Run(svc.List(), q).Total
	}
	assert.Equal(t, 3, count(listview.All))
	assert.Equal(t, 2, count("Active"))
	assert.Equal(t, 1, count("Inactive"))
	assert.Equal(t, 1, count("High Value"))
	assert.Equal(t, 1, count("Frequent"))
}

func TestDirectorySearchesPhoneAndOwner(t *testing.T) {
	svc := newTestService(t, &recordingGateway{})
	q := listview.NewQuery(20)
	q.Search = "99887"
	res := Schema.Run(svc.List(), q)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "BlueHill Properties", res.Items[0].CompanyName)

	q.Search = "rohit sharma"
	assert.Equal(t, 1, Schema.Run(svc.List(), q).Total)
}

func TestRegisterAssignsIDAndJoinDate(t *testing.T) {
	gw := &recordingGateway{}
	svc := newTestService(t, gw)
	c, err := svc.Register(context.Background(), ParseForm(registration(nil)))
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	assert.Equal(t, 2024, c.JoinedAt.Year())
	assert.Len(t, svc.List(), 4)
	require.Len(t, gw.calls, 1)
	assert.Equal(t, "create customers/4", gw.calls[0].String())
}

func TestGatewayFailureLeavesDirectoryUnchanged(t *testing.T) {
	gw := &recordingGateway{err: backend.ErrUnavailable}
	svc := newTestService(t, gw)
	ctx := context.Background()

	_, err := svc.Register(ctx, ParseForm(registration(nil)))
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	assert.Len(t, svc.List(), 3)

	_, err = svc.ToggleStatus(ctx, 1)
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	c, _ := svc.Get(1)
	assert.Equal(t, StatusActive, c.Status)

	_, err = svc.Update(ctx, 1, ParseForm(registration(map[string]string{FieldCompanyName: "Renamed"})))
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	c, _ = svc.Get(1)
	assert.Equal(t, "Sunrise Developers", c.CompanyName)

	assert.ErrorIs(t, svc.Delete(ctx, 1), backend.ErrUnavailable)
	assert.Len(t, svc.List(), 3)
}

func TestToggleStatusRecordsActivity(t *testing.T) {
	svc := newTestService(t, &recordingGateway{})
	c, err := svc.ToggleStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, c.Status)
	assert.Equal(t, []string{"Marked as inactive"}, c.ActivityLog)

	c, err = svc.ToggleStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, c.Status)
}

func TestUpdateKeepsNonFormFields(t *testing.T) {
	svc := newTestService(t, &recordingGateway{})
	c, err := svc.Update(context.Background(), 2, ParseForm(registration(map[string]string{FieldCompanyName: "BlueHill Estates"})))
	require.NoError(t, err)
	assert.Equal(t, "BlueHill Estates", c.CompanyName)
	assert.Equal(t, 14, c.OrderCount)
	assert.Equal(t, int64(2), c.ID)
}

func TestMissingCustomer(t *testing.T) {
	svc := newTestService(t, &recordingGateway{})
	ctx := context.Background()
	_, err := svc.ToggleStatus(ctx, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, svc.Delete(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, svc.ResetPassword(ctx, 99), ErrNotFound)
}
