// internal/content/backend.go
//
// Content Backend port.
//
// Context
// -------
// The resolver core never talks to storage directly; it depends on this
// interface so tests can substitute deterministic fakes and production can
// later swap the SQL adapter for another store without touching call sites.
// `SQL` (sql.go) is the production implementation.
package content

import (
	"context"
	"errors"
)

// ErrNoTenant is returned when no tenant row matches the lookup, as opposed
// to the backend being unreachable.  Callers use the distinction to decide
// between a not-found response and stale-cache degradation.
var ErrNoTenant = errors.New("content: no matching tenant")

// Backend is the abstract query surface of the content store.
type Backend interface {
	// FindTenantByDomain matches `domain` against the tenant's domain
	// column, and, when localAlias is non-empty, against local_domain as
	// well.  Returns ErrNoTenant when nothing matches.
	FindTenantByDomain(ctx context.Context, domain, localAlias string) (*TenantRecord, error)

	// FindFallbackTenant returns the tenant flagged as default, so local
	// development and misconfigured hosts still render something.
	FindFallbackTenant(ctx context.Context) (*TenantRecord, error)

	// ViewBindings returns the per-collection pre-filtered view names bound
	// to one tenant.  Collections without a binding are absent from the map.
	ViewBindings(ctx context.Context, tenantID string) (map[Collection]string, error)

	// QueryRedirectCandidates returns records in one collection whose
	// redirect is active and whose target is non-empty, capped at limit.
	// When viewName is non-empty the pre-filtered view is preferred; a view
	// that yields zero rows falls back to the explicit tenant filter.
	QueryRedirectCandidates(ctx context.Context, tenantID string, col Collection, viewName string, limit int) ([]RedirectCandidate, error)
}
