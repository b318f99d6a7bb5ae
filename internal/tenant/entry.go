// internal/tenant/entry.go
//
// Tenant cache entry and aggregate.
//
// Context
// -------
// A resolved Config aggregates everything the rendering layer needs to
// serve a single tenant: identifiers, theme, footer and contact text,
// analytics ids, and the per-collection view bindings the redirect fetcher
// consults.  The cache stores a pointer to Config inside `entry`, along
// with the `fetchedAt` timestamp used by the TTL check.
//
// Notes
// -----
//   - Config is immutable after load; a refresh builds a brand-new value
//     and replaces the cache entry, never mutating fields in place.
//   - An expired entry is not actively evicted.  It is kept so a backend
//     outage can still be answered with the last known config.
//   - Oxford commas, two spaces after periods.
package tenant

import (
	"time"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
)

//
// Cache entry
//

type entry struct {
	cfg       *Config
	fetchedAt time.Time
}

//
// Tenant aggregate
//

// Theme groups the presentation fields a tenant can brand.
type Theme struct {
	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	BackgroundColor string
	TextColor       string
	HeadingFont     string
	BodyFont        string
}

// Config groups all per-tenant values needed by request handlers.
type Config struct {
	ID           string // Opaque backend record id
	Domain       string
	LocalDomain  string // Dev alias, e.g. "localhost:3000"
	Title        string
	LogoURL      string
	FooterText   string
	ContactEmail string
	Theme        Theme

	GoogleAnalyticsID  string
	GoogleTagManagerID string

	// ViewBindings names the backend-side pre-filtered view per content
	// collection.  Collections without a binding are absent.
	ViewBindings map[content.Collection]string
}
