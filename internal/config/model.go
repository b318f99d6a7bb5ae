// internal/config/model.go
//
// Typed configuration model for the resolver core.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                        – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `BLOG_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// Mode constants
//

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Database section
//

// Database holds the content-backend DSN.  A single pool serves every
// tenant; per-tenant scoping happens in WHERE clauses, not in credentials.
type Database struct {
	DSN string `koanf:"dsn" validate:"required"`
}

//
// Resolver section
//

// Resolver holds the cache and refresh tunables for the tenant and redirect
// resolution pipeline.  Zero values are backfilled with the documented
// defaults by the loader, so YAML only needs to name what it changes.
type Resolver struct {
	Mode            string        `koanf:"mode" validate:"required,oneof=development production"`
	TenantTTL       time.Duration `koanf:"tenant_ttl"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
	MaxRecords      int           `koanf:"max_records" validate:"min=0"`

	// DevPortAliases maps a local port ("3000") to the host key a tenant
	// row declares as its local domain ("localhost:3000").  Consulted only
	// in development mode.
	DevPortAliases map[string]string `koanf:"dev_port_aliases"`

	// RedisAddr switches the redirect store from process-local memory to a
	// shared Redis instance when non-empty ("host:port").
	RedisAddr string `koanf:"redis_addr"`
}

//
// Static tenant overrides
//

// ThemeOverride carries the statically declared theme fields for one tenant.
// Empty strings mean "no opinion"; the backend value wins where present.
type ThemeOverride struct {
	PrimaryColor    string `koanf:"primary_color"`
	SecondaryColor  string `koanf:"secondary_color"`
	AccentColor     string `koanf:"accent_color"`
	BackgroundColor string `koanf:"background_color"`
	TextColor       string `koanf:"text_color"`
	HeadingFont     string `koanf:"heading_font"`
	BodyFont        string `koanf:"body_font"`
}

// TenantOverride is a statically declared partial tenant config, keyed by
// normalized domain in the `tenants:` YAML block.  Overrides are
// authoritative only where the backend provides no value.
type TenantOverride struct {
	Title              string        `koanf:"title"`
	LogoURL            string        `koanf:"logo_url"`
	FooterText         string        `koanf:"footer_text"`
	ContactEmail       string        `koanf:"contact_email"`
	GoogleAnalyticsID  string        `koanf:"google_analytics_id"`
	GoogleTagManagerID string        `koanf:"google_tag_manager_id"`
	Theme              ThemeOverride `koanf:"theme"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or BLOG_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // BLOG_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP                      `koanf:"http"`
	Database Database                  `koanf:"database"`
	Resolver Resolver                  `koanf:"resolver"`
	Tenants  map[string]TenantOverride `koanf:"tenants"`
	Paths    Paths                     `koanf:"-"` // not loaded from config files
}

// Development reports whether the process runs in development mode, which
// keeps ports in host keys and enables the dev port-alias table.
func (c *Config) Development() bool { return c.Resolver.Mode == ModeDevelopment }
