// internal/middleware/redirect.go
//
// Redirect middleware.
//
// Context
// -------
// Blog-like paths are single-segment slugs ("/guide-a").  For those, the
// middleware asks the resolver for a redirect target; a hit becomes a 308
// Permanent Redirect, a miss falls through to the next handler.  Multi-
// segment paths, assets, and non-GET methods are never checked.
//
// The resolver's failure semantics carry over: a slow or broken backend
// can only make this middleware fall through, never fail the request.
package middleware

import (
	"net/http"
	"strings"

	"github.com/steef2323/niche-blog-platform-sub001/internal/resolver"
)

// Redirects rewrites slugs with an active redirect target.  Must run after
// Resolve, which provides the tenant.
func Redirects(res *resolver.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			cfg, ok := TenantFrom(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			slug := strings.Trim(r.URL.Path, "/")
			if slug == "" || strings.ContainsRune(slug, '/') {
				next.ServeHTTP(w, r)
				return
			}

			if target := res.ResolveRedirect(r.Context(), cfg.ID, slug); target != "" {
				http.Redirect(w, r, target, http.StatusPermanentRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
