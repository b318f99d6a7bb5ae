// Package metrics holds Prometheus instruments that are used across the
// resolver core.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TenantResolveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_total",
			Help: "Cumulative number of tenant configs successfully resolved from the backend.",
		})

	TenantResolveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_errors_total",
			Help: "Cumulative number of tenant resolution backend failures.",
		})

	TenantStaleServesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_stale_serves_total",
			Help: "Cumulative number of expired tenant configs served because the backend was down.",
		})

	RedirectRefreshTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_refresh_total",
			Help: "Cumulative number of redirect map refreshes written to the store.",
		})

	RedirectRefreshErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_refresh_errors_total",
			Help: "Cumulative number of redirect fetches in which every collection query failed.",
		})

	RedirectFetchTimeoutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_fetch_timeouts_total",
			Help: "Cumulative number of redirect lookups that gave up waiting on an in-flight fetch.",
		})

	ActiveRefreshers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_redirect_refreshers",
			Help: "Number of per-tenant background refresh loops currently running.",
		})
)

func init() {
	prometheus.MustRegister(
		TenantResolveTotal,
		TenantResolveErrorsTotal,
		TenantStaleServesTotal,
		RedirectRefreshTotal,
		RedirectRefreshErrorsTotal,
		RedirectFetchTimeoutsTotal,
		ActiveRefreshers,
	)
}
