// Package dashboard builds the platform overview and usage views.
package dashboard

import "time"

// LogEntry is one platform activity record.
type LogEntry struct {
	At     time.Time `yaml:"at" json:"at"`
	Actor  string    `yaml:"actor" json:"actor"`
	Action string    `yaml:"action" json:"action"`
	Target string    `yaml:"target" json:"target"`
	Level  string    `yaml:"level" json:"level"`
}

// TrendPoint is one month of the revenue trend.
type TrendPoint struct {
	Month   string  `yaml:"month" json:"month"`
	Revenue float64 `yaml:"revenue" json:"revenue"`
}

// UsagePoint is one day of platform usage.
type UsagePoint struct {
	Day       string  `yaml:"day" json:"day"`
	API       int     `yaml:"api" json:"api"`
	StorageGB float64 `yaml:"storage_gb" json:"storage_gb"`
	ErrorRate float64 `yaml:"error_rate" json:"error_rate"`
}

// RegionUsage is the request volume served from one region.
type RegionUsage struct {
	Region   string `yaml:"region" json:"region"`
	Requests int    `yaml:"requests" json:"requests"`
	Latency  int    `yaml:"latency_ms" json:"latency_ms"`
}

// Stats are the platform figures not derivable from the directories.
type Stats struct {
	ActiveSessions int           `yaml:"active_sessions" json:"active_sessions"`
	RevenueTrend   []TrendPoint  `yaml:"revenue_trend" json:"revenue_trend"`
	Usage          []UsagePoint  `yaml:"usage" json:"usage"`
	Regions        []RegionUsage `yaml:"regions" json:"regions"`
}

// PlanShare is the number of tenants on one plan tier.
type PlanShare struct {
	Plan    string `json:"plan"`
	Tenants int    `json:"tenants"`
	Percent int    `json:"percent"`
}

// Overview is the dashboard landing view model.
type Overview struct {
	Organizations  int          `json:"organizations"`
	TotalUsers     int          `json:"total_users"`
	MRR            float64      `json:"mrr"`
	ActiveSessions int          `json:"active_sessions"`
	PlanMix        []PlanShare  `json:"plan_mix"`
	RecentActivity []LogEntry   `json:"recent_activity"`
	RevenueTrend   []TrendPoint `json:"revenue_trend"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

// UsageView is the usage tab view model.
type UsageView struct {
	Usage        []UsagePoint  `json:"usage"`
	Regions      []RegionUsage `json:"regions"`
	TotalAPI     int           `json:"total_api"`
	PeakDay      string        `json:"peak_day"`
	AvgErrorRate float64       `json:"avg_error_rate"`
}
