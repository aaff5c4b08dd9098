package dashboard

import (
	"context"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/odyssey-console/internal/plans"
	"github.com/odyssey-erp/odyssey-console/internal/tenants"
)

// RecentActivityLimit is the number of log entries on the overview.
const RecentActivityLimit = 6

// TenantSource lists the tenant directory.
type TenantSource interface {
	List() []tenants.Tenant
}

// Service builds dashboard view models. Concurrent overview requests share
// a single build.
type Service struct {
	tenants  TenantSource
	activity []LogEntry
	stats    Stats
	now      func() time.Time
	group    singleflight.Group

	build func(context.Context) (Overview, error)
}

// NewService constructs the dashboard service.
func NewService(tenants TenantSource, activity []LogEntry, stats Stats) *Service {
	s := &Service{
		tenants:  tenants,
		activity: slices.Clone(activity),
		stats:    stats,
		now:      time.Now,
	}
	s.build = s.buildOverview
	return s
}

// Overview returns the landing view model. The bool reports whether the
// result was shared with another in-flight request.
func (s *Service) Overview(ctx context.Context) (Overview, bool, error) {
	ch := s.group.DoChan("overview", func() (interface{}, error) {
		return s.build(ctx)
	})
	select {
	case <-ctx.Done():
		return Overview{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Overview{}, res.Shared, res.Err
		}
		return res.Val.(Overview), res.Shared, nil
	}
}

func (s *Service) buildOverview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, err
	}
	ts := s.tenants.List()
	o := Overview{
		Organizations:  len(ts),
		ActiveSessions: s.stats.ActiveSessions,
		RevenueTrend:   slices.Clone(s.stats.RevenueTrend),
		RecentActivity: RecentActivity(s.activity, RecentActivityLimit),
		PlanMix:        PlanMix(ts),
		GeneratedAt:    s.now(),
	}
	for _, t := range ts {
		o.TotalUsers += t.Users
		o.MRR += t.MRR
	}
	return o, nil
}

// Usage returns the usage tab view model.
func (s *Service) Usage() UsageView {
	v := UsageView{
		Usage:   slices.Clone(s.stats.Usage),
		Regions: slices.Clone(s.stats.Regions),
	}
	peak := -1
	var errSum float64
	for _, u := range v.Usage {
		v.TotalAPI += u.API
		errSum += u.ErrorRate
		if u.API > peak {
			peak = u.API
			v.PeakDay = u.Day
		}
	}
	if n := len(v.Usage); n > 0 {
		v.AvgErrorRate = math.Round(errSum/float64(n)*100) / 100
	}
	return v
}

// RecentActivity returns up to limit entries, newest first.
func RecentActivity(entries []LogEntry, limit int) []LogEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b LogEntry) int { return b.At.Compare(a.At) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PlanMix counts tenants per plan tier in tier order. Tiers without tenants
// are omitted.
func PlanMix(ts []tenants.Tenant) []PlanShare {
	counts := make(map[string]int)
	var extra []string
	for _, t := range ts {
		if counts[t.Plan] == 0 && !slices.Contains(plans.Tiers, t.Plan) {
			extra = append(extra, t.Plan)
		}
		counts[t.Plan]++
	}
	var out []PlanShare
	for _, p := range append(slices.Clone(plans.Tiers), extra...) {
		n := counts[p]
		if n == 0 {
			continue
		}
		out = append(out, PlanShare{Plan: p, Tenants: n, Percent: int(math.Round(float64(n) / float64(len(ts)) * 100))})
	}
	return out
}
