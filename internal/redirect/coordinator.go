// internal/redirect/coordinator.go
//
// Per-lookup coordination: fresh-hit fast path, single-flight fill, and the
// bounded-timeout race.
//
// Context
// -------
// A lookup against a fresh store is pure in-memory work.  On a stale or
// never-filled store the coordinator starts (or joins) one fetch per tenant
// via singleflight and waits on it for at most the configured timeout.  The
// timeout cancels only the wait: the flight runs on a detached context, so
// when it eventually completes it still writes the store and the next
// lookup is a warm hit.
//
// Failure semantics: Lookup never returns an error.  Timeouts, backend
// failures, and absent slugs all yield the empty string; staleness and
// latency are the only externally visible effects of backend trouble.
package redirect

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"go.uber.org/zap"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
	"github.com/steef2323/niche-blog-platform-sub001/internal/metrics"
)

// DefaultLookupTimeout bounds how long one lookup waits on a cache fill.
const DefaultLookupTimeout = 2 * time.Second

// Coordinator serves redirect lookups against a Store, filling it on demand.
type Coordinator struct {
	store    Store
	fetcher  *Fetcher
	freshFor time.Duration // staleness horizon, normally the refresh interval
	timeout  time.Duration
	sfg      singleflight.Group
}

// NewCoordinator constructs a Coordinator.  Non-positive durations select
// the defaults.
func NewCoordinator(store Store, fetcher *Fetcher, freshFor, timeout time.Duration) *Coordinator {
	if freshFor <= 0 {
		freshFor = DefaultRefreshInterval
	}
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &Coordinator{
		store:    store,
		fetcher:  fetcher,
		freshFor: freshFor,
		timeout:  timeout,
	}
}

// Lookup returns the redirect target for (tenantID, slug), or "" when there
// is none, the wait budget runs out, or the backend fails.
func (c *Coordinator) Lookup(ctx context.Context, tenantID, slug string, hints map[content.Collection]string) string {
	if c.store.Fresh(tenantID, c.freshFor) {
		target, _ := c.store.Lookup(tenantID, slug)
		return target
	}

	ch := c.sfg.DoChan(tenantID, func() (interface{}, error) {
		// Detached context: the flight must outlive a caller whose wait
		// budget expires, so the result still warms the store.
		fctx, cancel := context.WithTimeout(context.Background(), backgroundFetchBudget)
		defer cancel()

		start := time.Now()
		mapping, err := c.fetcher.Fetch(fctx, tenantID, hints)
		if err != nil {
			return nil, err
		}
		if c.store.Replace(tenantID, mapping, start) {
			metrics.RedirectRefreshTotal.Inc()
		}
		return mapping, nil
	})

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			zap.S().Warnw("redirect fill failed", "tenant", tenantID, "err", res.Err)
			return ""
		}
		return res.Val.(map[string]string)[slug]
	case <-timer.C:
		metrics.RedirectFetchTimeoutsTotal.Inc()
		zap.S().Infow("redirect lookup timed out, fill continues in background",
			"tenant", tenantID, "slug", slug)
		return ""
	case <-ctx.Done():
		return ""
	}
}
