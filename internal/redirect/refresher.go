// internal/redirect/refresher.go
//
// Per-tenant background refresh loops.
//
// Context
// -------
// One goroutine per tenant keeps the redirect store warm so requests rarely
// pay the fetch cost.  Loops start lazily on first use; EnsureStarted is
// idempotent because the per-tenant state (absent = not started, present =
// running) only transitions under the refresher mutex.  A failed refresh is
// logged and the next tick tries again; the store keeps its previous map.
package redirect

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
	"github.com/steef2323/niche-blog-platform-sub001/internal/metrics"
)

// DefaultRefreshInterval is the gap between scheduled refreshes.
const DefaultRefreshInterval = 15 * time.Minute

type runner struct {
	ticker *time.Ticker
	done   chan struct{}
}

// Refresher owns the per-tenant refresh loops.
type Refresher struct {
	fetcher  *Fetcher
	store    Store
	interval time.Duration

	mu      sync.Mutex
	running map[string]*runner
}

// NewRefresher constructs a Refresher.  interval <= 0 selects the default.
func NewRefresher(fetcher *Fetcher, store Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		running:  make(map[string]*runner),
	}
}

// EnsureStarted launches the refresh loop for a tenant unless one is already
// running.  The first refresh happens immediately, then on every tick for
// the life of the process (or until Stop/StopAll).
func (r *Refresher) EnsureStarted(tenantID string, hints map[content.Collection]string) {
	r.mu.Lock()
	if _, ok := r.running[tenantID]; ok {
		r.mu.Unlock()
		return
	}
	run := &runner{
		ticker: time.NewTicker(r.interval),
		done:   make(chan struct{}),
	}
	r.running[tenantID] = run
	r.mu.Unlock()

	metrics.ActiveRefreshers.Inc()
	zap.S().Infow("redirect refresher started", "tenant", tenantID, "interval", r.interval)
	go r.loop(tenantID, hints, run)
}

func (r *Refresher) loop(tenantID string, hints map[content.Collection]string, run *runner) {
	r.refresh(tenantID, hints)
	for {
		select {
		case <-run.done:
			return
		case <-run.ticker.C:
			r.refresh(tenantID, hints)
		}
	}
}

func (r *Refresher) refresh(tenantID string, hints map[content.Collection]string) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundFetchBudget)
	defer cancel()

	start := time.Now()
	mapping, err := r.fetcher.Fetch(ctx, tenantID, hints)
	if err != nil {
		metrics.RedirectRefreshErrorsTotal.Inc()
		zap.S().Warnw("redirect refresh failed", "tenant", tenantID, "err", err)
		return
	}
	if r.store.Replace(tenantID, mapping, start) {
		metrics.RedirectRefreshTotal.Inc()
		zap.L().Debug("redirect map refreshed",
			zap.String("tenant", tenantID),
			zap.Int("count", len(mapping)))
	}
}

// Stop halts one tenant's loop.  Safe to call from any goroutine, and a
// no-op for tenants that never started.
func (r *Refresher) Stop(tenantID string) {
	r.mu.Lock()
	run, ok := r.running[tenantID]
	delete(r.running, tenantID)
	r.mu.Unlock()
	if !ok {
		return
	}
	run.ticker.Stop()
	close(run.done)
	metrics.ActiveRefreshers.Dec()
}

// StopAll halts every loop.  Used for graceful shutdown and test teardown.
func (r *Refresher) StopAll() {
	r.mu.Lock()
	stopped := r.running
	r.running = make(map[string]*runner)
	r.mu.Unlock()

	for tenantID, run := range stopped {
		run.ticker.Stop()
		close(run.done)
		metrics.ActiveRefreshers.Dec()
		zap.S().Infow("redirect refresher stopped", "tenant", tenantID)
	}
}

// Active reports the number of running loops.
func (r *Refresher) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.running)
}
