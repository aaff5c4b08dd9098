package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

type staticTenants []tenants.Tenant

func (s staticTenants) List() []tenants.Tenant { return s }

func fixtureTenants() staticTenants {
	return staticTenants{
		{Name: "Acme", Plan: "Pro", Users: 40, MRR: 1299},
		{Name: "Globex", Plan: "Elite", Users: 120, MRR: 4999},
		{Name: "Initech", Plan: "Pro", Users: 10, MRR: 499},
		{Name: "Umbrella", Plan: "Basic", Users: 5, MRR: 99},
	}
}

func activity(n int) []LogEntry {
	base := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	out := make([]LogEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, LogEntry{At: base.Add(time.Duration(i) * time.Hour), Action: "event", Target: string(rune('a' + i))})
	}
	return out
}

func TestOverviewTotals(t *testing.T) {
	svc := NewService(fixtureTenants(), activity(9), Stats{ActiveSessions: 312, RevenueTrend: []TrendPoint{{Month: "Jan", Revenue: 1}}})
	o, _, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, o.Organizations)
	assert.Equal(t, 175, o.TotalUsers)
	assert.Equal(t, 6896.0, o.MRR)
	assert.Equal(t, 312, o.ActiveSessions)
	require.Len(t, o.RecentActivity, RecentActivityLimit)
	assert.Equal(t, "i", o.RecentActivity[0].Target)
	assert.Equal(t, "d", o.RecentActivity[5].Target)
	assert.Equal(t, []PlanShare{
		{Plan: "Basic", Tenants: 1, Percent: 25},
		{Plan: "Pro", Tenants: 2, Percent: 50},
		{Plan: "Elite", Tenants: 1, Percent: 25},
	}, o.PlanMix)
}

func TestConcurrentOverviewsShareOneBuild(t *testing.T) {
	svc := NewService(fixtureTenants(), nil, Stats{})
	release := make(chan struct{})
	var builds atomic.Int32
	started := make(chan struct{}, 1)
	svc.build = func(ctx context.Context) (Overview, error) {
		builds.Add(1)
		started <- struct{}{}
		<-release
		return svc.buildOverview(ctx)
	}

	var wg sync.WaitGroup
	results := make([]Overview, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _, _ = svc.Overview(context.Background())
	}()
	<-started
	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, _ = svc.Overview(context.Background())
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, o := range results {
		assert.Equal(t, 4, o.Organizations)
	}
}

func TestOverviewHonoursCancellation(t *testing.T) {
	svc := NewService(fixtureTenants(), nil, Stats{})
	svc.build = func(ctx context.Context) (Overview, error) {
		time.Sleep(50 * time.Millisecond)
		return Overview{}, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := svc.Overview(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUsage(t *testing.T) {
	svc := NewService(fixtureTenants(), nil, Stats{Usage: []UsagePoint{
		{Day: "Mon", API: 1200, ErrorRate: 0.4},
		{Day: "Tue", API: 1800, ErrorRate: 0.2},
		{Day: "Wed", API: 900, ErrorRate: 0.3},
	}})
	u := svc.Usage()
	assert.Equal(t, 3900, u.TotalAPI)
	assert.Equal(t, "Tue", u.PeakDay)
	assert.Equal(t, 0.3, u.AvgErrorRate)
}
