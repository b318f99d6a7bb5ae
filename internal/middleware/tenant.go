// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"context"
	"net/http"

	"github.com/steef2323/niche-blog-platform-sub001/internal/resolver"
	"github.com/steef2323/niche-blog-platform-sub001/internal/tenant"
)

type tenantKey struct{}

// TenantFrom extracts the tenant config stored by Resolve.  ok is false for
// requests that bypassed the middleware.
func TenantFrom(ctx context.Context) (*tenant.Config, bool) {
	cfg, ok := ctx.Value(tenantKey{}).(*tenant.Config)
	return cfg, ok
}

// Resolve maps the Host header to a tenant config and stores it in the
// request context.  Unknown hosts get a 404; the rendering layer never sees
// a request without a tenant.
func Resolve(res *resolver.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg, err := res.ResolveTenant(r.Context(), r.Host)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), tenantKey{}, cfg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
