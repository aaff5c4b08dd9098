package payments

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/backend"
	"github.com/odyssey-erp/odyssey-console/internal/listview"
)

func seedPayments() []Payment {
	on := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []Payment{
		{ID: 1, CustomerName: "John Anderson", Amount: 1299.99, Date: on("2025-11-05"), Method: "Credit Card", TransactionID: "#TXN-58743", Status: StatusSuccess},
		{ID: 2, CustomerName: "Sarah Mitchell", Amount: 899.50, Date: on("2025-11-01"), Method: "PayPal", TransactionID: "#TXN-19284", Status: StatusSuccess},
		{ID: 3, CustomerName: "Michael Chen", Amount: 249.99, Date: on("2025-11-04"), Method: "Debit Card", TransactionID: "#TXN-33451", Status: StatusFailed},
		{ID: 4, CustomerName: "Priya Nair", Amount: 129.00, Date: on("2025-11-08"), Method: "Bank Transfer", TransactionID: "#TXN-70001", Status: StatusPending},
	}
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestFeeAndNet(t *testing.T) {
	p := Payment{Amount: 1299.99}
	assert.Equal(t, 37.70, p.Fee())
	assert.Equal(t, 1262.29, p.Net())
	assert.Equal(t, "J", Payment{CustomerName: "john"}.Initial())
}

func TestCounts(t *testing.T) {
	assert.Equal(t, map[string]int{"all": 4, "success": 2, "failed": 1, "pending": 1}, Counts(seedPayments()))
}

func TestListOrderedNewestFirst(t *testing.T) {
	res := Schema.Run(seedPayments(), listview.NewQuery(20))
	require.Len(t, res.Items, 4)
	assert.Equal(t, int64(4), res.Items[0].ID)
	assert.Equal(t, int64(2), res.Items[3].ID)
}

func TestSearchTransactionAndMethod(t *testing.T) {
	q := listview.NewQuery(20)
	q.Search = "txn-334"
	assert.Equal(t, 1, Schema.Run(seedPayments(), q).Total)
	q.Search = "paypal"
	assert.Equal(t, 1, Schema.Run(seedPayments(), q).Total)
}

func TestReviewSetsStatusAndReference(t *testing.T) {
	svc, err := NewService(seedPayments(), backend.NewStub(quiet(), 0), quiet())
	require.NoError(t, err)

	p, err := svc.Review(context.Background(), 4, Accept)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, p.Status)
	assert.NotEmpty(t, p.ReviewRef)
	assert.False(t, p.ReviewedAt.IsZero())

	_, err = svc.Review(context.Background(), 4, Reject)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	p, err = svc.Review(context.Background(), 1, Reject)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, p.Status)
}

func TestReviewFailureKeepsPending(t *testing.T) {
	svc, err := NewService(seedPayments(), backend.NewStub(quiet(), 1), quiet())
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), 4, Accept)
	assert.ErrorIs(t, err, backend.ErrUnavailable)
	p, _ := svc.Get(4)
	assert.Equal(t, StatusPending, p.Status)
	assert.Empty(t, p.ReviewRef)

	_, err = svc.Review(context.Background(), 99, Accept)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTabForCategory(t *testing.T) {
	assert.Equal(t, "failed", tabForCategory("Failed").Key)
	assert.Equal(t, "all", tabForCategory(listview.All).Key)
	assert.Equal(t, "pending", TabByKey("PENDING").Key)
	assert.Equal(t, "all", TabByKey("bogus").Key)
}
