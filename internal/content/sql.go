// internal/content/sql.go
//
// SQL implementation of the Content Backend.
//
// Context
// -------
// These queries provide read-only access to the **tenant**, **tenant_view**,
// **post**, and **listicle** tables.  All tenant lookups exclude suspended
// or deleted rows at SQL level to keep callers simple, and every
// redirect-candidate query carries a LIMIT so a runaway tenant cannot force
// an unbounded scan.
//
// Workflow
// --------
//  1. Callers supply a *sqlx.DB connected to the content database.
//  2. Each helper executes one or two parameterised SELECTs.
//  3. Rows are scanned into the models in model.go.
//  4. sql.ErrNoRows on tenant lookups maps to ErrNoTenant; other errors are
//     returned verbatim so the caller can wrap or log them.
//
// Notes
// -----
//   - Column list matches the fields in `TenantRecord`; update both together.
//   - Oxford commas, two spaces after periods, no m-dash.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const tenantColumns = `id, domain, local_domain, title, logo_url, footer_text,
               contact_email, primary_color, secondary_color, accent_color,
               background_color, text_color, heading_font, body_font,
               google_analytics_id, google_tag_manager_id, is_default,
               suspended_at, deleted_at, created_at, updated_at`

// SQL is the sqlx-backed Backend implementation.
type SQL struct {
	db *sqlx.DB
}

// NewSQL wraps an open pool.  The pool is shared; SQL does not close it.
func NewSQL(db *sqlx.DB) *SQL {
	return &SQL{db: db}
}

// FindTenantByDomain fetches a single live tenant row by domain, or by
// local_domain when localAlias is non-empty.
func (s *SQL) FindTenantByDomain(ctx context.Context, domain, localAlias string) (*TenantRecord, error) {
	const q = `
        SELECT ` + tenantColumns + `
        FROM   tenant
        WHERE  (domain = ? OR (? <> '' AND local_domain = ?))
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	var rec TenantRecord
	if err := s.db.GetContext(ctx, &rec, q, domain, localAlias, localAlias); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoTenant
		}
		return nil, err
	}
	return &rec, nil
}

// FindFallbackTenant fetches the designated default tenant.  If several rows
// are flagged, the lowest id wins so the choice is deterministic.
func (s *SQL) FindFallbackTenant(ctx context.Context) (*TenantRecord, error) {
	const q = `
        SELECT ` + tenantColumns + `
        FROM   tenant
        WHERE  is_default = TRUE
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        ORDER  BY id
        LIMIT  1`
	var rec TenantRecord
	if err := s.db.GetContext(ctx, &rec, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoTenant
		}
		return nil, err
	}
	return &rec, nil
}

// ViewBindings loads all rows from `tenant_view` for one tenant and returns
// them as a map[collection]view_name.  The query runs once at tenant
// warm-up and the result is cached alongside the tenant config.
func (s *SQL) ViewBindings(ctx context.Context, tenantID string) (map[Collection]string, error) {
	const q = `
	    SELECT  collection, view_name
	    FROM    tenant_view
	    WHERE   tenant_id = ?`

	// Small slice cap avoids reallocations; a tenant binds at most a
	// handful of views.
	rows := make([]struct {
		Collection string `db:"collection"`
		ViewName   string `db:"view_name"`
	}, 0, 4)

	if err := s.db.SelectContext(ctx, &rows, q, tenantID); err != nil {
		return nil, err
	}

	bindings := make(map[Collection]string, len(rows))
	for _, r := range rows {
		bindings[Collection(r.Collection)] = r.ViewName
	}
	return bindings, nil
}

// QueryRedirectCandidates returns up to limit active-redirect records from
// one collection.  A supplied view name is tried first; zero rows or a view
// error fall back to the explicit tenant filter.
func (s *SQL) QueryRedirectCandidates(ctx context.Context, tenantID string, col Collection, viewName string, limit int) ([]RedirectCandidate, error) {
	base, view, err := tablesFor(col)
	if err != nil {
		return nil, err
	}

	if viewName != "" {
		q := `
	        SELECT slug, redirect_target
	        FROM   ` + view + `
	        WHERE  view_name = ?
	          AND  redirect_status = 'active'
	          AND  redirect_target <> ''
	        LIMIT  ?`
		var rows []RedirectCandidate
		err := s.db.SelectContext(ctx, &rows, q, viewName, limit)
		if err == nil && len(rows) > 0 {
			return rows, nil
		}
		if err != nil {
			zap.S().Warnw("redirect view query failed, falling back to tenant filter",
				"collection", col, "view", viewName, "err", err)
		}
	}

	q := `
        SELECT slug, redirect_target
        FROM   ` + base + `
        WHERE  tenant_id = ?
          AND  redirect_status = 'active'
          AND  redirect_target <> ''
        LIMIT  ?`
	var rows []RedirectCandidate
	if err := s.db.SelectContext(ctx, &rows, q, tenantID, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// tablesFor maps a collection onto its base and view tables.
func tablesFor(col Collection) (base, view string, err error) {
	switch col {
	case CollectionPosts:
		return "post", "post_view", nil
	case CollectionListicles:
		return "listicle", "listicle_view", nil
	default:
		return "", "", fmt.Errorf("content: unknown collection %q", col)
	}
}
