package tenant

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"go.uber.org/zap"

	"github.com/steef2323/niche-blog-platform-sub001/internal/config"
	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
	"github.com/steef2323/niche-blog-platform-sub001/internal/hostkey"
	"github.com/steef2323/niche-blog-platform-sub001/internal/metrics"
)

// DefaultTTL bounds how long a resolved config is served without a backend
// round trip.  Tenant metadata changes rarely, so the window is generous.
const DefaultTTL = 30 * 24 * time.Hour

// ErrNotFound is returned when no tenant matches the normalized key and no
// fallback tenant exists.
var ErrNotFound = errors.New("tenant not found")

// Cache lazily loads tenant configs, stores them in a sync.Map keyed by
// normalized host, and refreshes them on TTL expiry.  Expired entries are
// kept as a stale fallback for backend outages.
type Cache struct {
	backend   content.Backend
	norm      *hostkey.Normalizer
	overrides map[string]config.TenantOverride
	ttl       time.Duration
	sfg       singleflight.Group
	m         sync.Map

	now func() time.Time // swapped in tests
}

// NewCache constructs a Cache.  overrides may be nil.
func NewCache(backend content.Backend, norm *hostkey.Normalizer, overrides map[string]config.TenantOverride, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		backend:   backend,
		norm:      norm,
		overrides: overrides,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Resolve returns the Config for a raw Host header, loading it on demand.
// Concurrent callers for the same key share one backend fetch.
func (c *Cache) Resolve(ctx context.Context, rawHost string) (*Config, error) {
	key := c.norm.Normalize(rawHost)
	if key == "" {
		return nil, ErrNotFound
	}

	if cfg, ok := c.fresh(key); ok {
		return cfg, nil
	}

	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if cfg, ok := c.fresh(key); ok {
			return cfg, nil
		}
		cfg, err := c.load(ctx, key)
		if err != nil {
			if !errors.Is(err, content.ErrNoTenant) {
				// Backend trouble: serve the expired entry when one exists
				// rather than failing the page.
				if v, ok := c.m.Load(key); ok {
					metrics.TenantStaleServesTotal.Inc()
					zap.S().Warnw("tenant backend unavailable, serving stale config",
						"host", key, "err", err)
					return v.(*entry).cfg, nil
				}
			}
			metrics.TenantResolveErrorsTotal.Inc()
			return nil, ErrNotFound
		}
		c.m.Store(key, &entry{cfg: cfg, fetchedAt: c.now()})
		metrics.TenantResolveTotal.Inc()
		return cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Config), nil
}

// fresh returns the cached config when its entry is inside the TTL.
func (c *Cache) fresh(key string) (*Config, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	ent := v.(*entry)
	if c.now().Sub(ent.fetchedAt) >= c.ttl {
		return nil, false
	}
	return ent.cfg, true
}

// load turns key → *Config.  Steps:
//
//  1. Fetch the tenant row by domain, with the dev local-domain alias.
//  2. Fall back to the designated default tenant when nothing matches.
//  3. Fetch view bindings (absence only disables view-first queries).
//  4. Merge static overrides where the backend left blanks.
func (c *Cache) load(ctx context.Context, key string) (*Config, error) {
	alias := ""
	if c.norm.Development() {
		alias = key
		if a, ok := c.norm.PortAlias(key); ok {
			alias = a
		}
	}

	rec, err := c.backend.FindTenantByDomain(ctx, key, alias)
	if errors.Is(err, content.ErrNoTenant) {
		rec, err = c.backend.FindFallbackTenant(ctx)
	}
	if err != nil {
		return nil, err
	}

	views, err := c.backend.ViewBindings(ctx, rec.ID)
	if err != nil {
		zap.S().Warnw("view bindings unavailable", "tenant", rec.ID, "err", err)
		views = nil
	}

	ov, ok := c.overrides[key]
	if !ok {
		ov = c.overrides[rec.Domain]
	}
	return newConfig(rec, views, ov), nil
}
