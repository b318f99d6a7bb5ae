// internal/resolver/resolver.go
//
// Resolver API facade.
//
// Context
// -------
// This is the surface the rendering layer consumes: resolve a Host header
// to a tenant config, and resolve a (tenant, slug) pair to a redirect
// target.  Both operations are read-only apart from cache warming, and
// neither ever propagates a backend failure; the worst outcomes are a
// not-found tenant or an empty redirect target.
//
// The facade also owns the lazy start of per-tenant background refreshers:
// the first redirect lookup for a tenant starts its loop, later lookups
// join the warm cache.
package resolver

import (
	"context"
	"sync"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
	"github.com/steef2323/niche-blog-platform-sub001/internal/redirect"
	"github.com/steef2323/niche-blog-platform-sub001/internal/tenant"
)

// Resolver wires the tenant cache with the redirect pipeline.
type Resolver struct {
	tenants   *tenant.Cache
	coord     *redirect.Coordinator
	refresher *redirect.Refresher

	// View hints per tenant id, captured at tenant resolution time so
	// redirect lookups can prefer pre-filtered backend views.
	hints sync.Map // string → map[content.Collection]string
}

// New constructs a Resolver.
func New(tenants *tenant.Cache, coord *redirect.Coordinator, refresher *redirect.Refresher) *Resolver {
	return &Resolver{
		tenants:   tenants,
		coord:     coord,
		refresher: refresher,
	}
}

// ResolveTenant maps a raw Host header to a tenant config.  Returns
// tenant.ErrNotFound when no tenant (and no fallback) matches.
func (r *Resolver) ResolveTenant(ctx context.Context, hostHeader string) (*tenant.Config, error) {
	cfg, err := r.tenants.Resolve(ctx, hostHeader)
	if err != nil {
		return nil, err
	}
	if cfg.ViewBindings != nil {
		r.hints.Store(cfg.ID, cfg.ViewBindings)
	}
	return cfg, nil
}

// ResolveRedirect returns the redirect target for (tenantID, slug), or ""
// when there is none.  The tenant's background refresher is started on
// first use.
func (r *Resolver) ResolveRedirect(ctx context.Context, tenantID, slug string) string {
	if tenantID == "" || slug == "" {
		return ""
	}
	hints := r.hintsFor(tenantID)
	r.refresher.EnsureStarted(tenantID, hints)
	return r.coord.Lookup(ctx, tenantID, slug, hints)
}

// Close stops all background refreshers.  Used for graceful shutdown and
// test teardown.
func (r *Resolver) Close() {
	r.refresher.StopAll()
}

func (r *Resolver) hintsFor(tenantID string) map[content.Collection]string {
	v, ok := r.hints.Load(tenantID)
	if !ok {
		return nil
	}
	return v.(map[content.Collection]string)
}
