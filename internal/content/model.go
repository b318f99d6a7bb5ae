// internal/content/model.go
//
// Content-backend row models.
//
// Context
// -------
// `TenantRecord` mirrors one row in the persistent **tenant** table,
// capturing domain routing, theme, analytics, and soft-delete flags.  It is
// used by the tenant cache to build in-memory configs and by admin tooling
// that lists or edits tenants.
//
// Schema reference (2026-07-14)
//
//	CREATE TABLE tenant (
//	    id                     VARCHAR(32)  PRIMARY KEY,
//	    domain                 VARCHAR(256) NOT NULL UNIQUE,
//	    local_domain           VARCHAR(256) NOT NULL DEFAULT '',
//	    title                  VARCHAR(256) NOT NULL DEFAULT '',
//	    logo_url               VARCHAR(512) NOT NULL DEFAULT '',
//	    footer_text            TEXT         NOT NULL,
//	    contact_email          VARCHAR(256) NOT NULL DEFAULT '',
//	    primary_color          VARCHAR(32)  NOT NULL DEFAULT '',
//	    secondary_color        VARCHAR(32)  NOT NULL DEFAULT '',
//	    accent_color           VARCHAR(32)  NOT NULL DEFAULT '',
//	    background_color       VARCHAR(32)  NOT NULL DEFAULT '',
//	    text_color             VARCHAR(32)  NOT NULL DEFAULT '',
//	    heading_font           VARCHAR(128) NOT NULL DEFAULT '',
//	    body_font              VARCHAR(128) NOT NULL DEFAULT '',
//	    google_analytics_id    VARCHAR(64)  NOT NULL DEFAULT '',
//	    google_tag_manager_id  VARCHAR(64)  NOT NULL DEFAULT '',
//	    is_default             TINYINT(1)   NOT NULL DEFAULT 0,
//	    suspended_at           TIMESTAMP NULL,
//	    deleted_at             TIMESTAMP NULL,
//	    created_at             TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at             TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// Notes
// -----
// • Optional text columns are NOT NULL DEFAULT '' so "absent" is always the
//   empty string; the merge logic in internal/tenant relies on that.
// • Analytics identifiers are exactly two columns.  Whatever spellings the
//   upstream CMS uses are flattened into these at import time, so the core
//   never does string-keyed field scanning.
// • Nullable timestamps are `*time.Time`; callers must nil-check before use.
// • These structs contain no behaviour—pure data models for sqlx scans.
package content

import (
	"database/sql"
	"time"
)

//
// Collections
//

// Collection names one of the two post-like content collections a tenant
// publishes redirects from.
type Collection string

const (
	CollectionPosts     Collection = "posts"
	CollectionListicles Collection = "listicles"
)

// MergeOrder is the fixed order redirect candidates are merged in.  The last
// collection wins on slug collision, so listicle targets override post
// targets.  Callers must not reorder this.
var MergeOrder = [2]Collection{CollectionPosts, CollectionListicles}

//
// Rows
//

// TenantRecord mirrors one row in the `tenant` table.
type TenantRecord struct {
	ID                 string     `db:"id"`
	Domain             string     `db:"domain"`
	LocalDomain        string     `db:"local_domain"`
	Title              string     `db:"title"`
	LogoURL            string     `db:"logo_url"`
	FooterText         string     `db:"footer_text"`
	ContactEmail       string     `db:"contact_email"`
	PrimaryColor       string     `db:"primary_color"`
	SecondaryColor     string     `db:"secondary_color"`
	AccentColor        string     `db:"accent_color"`
	BackgroundColor    string     `db:"background_color"`
	TextColor          string     `db:"text_color"`
	HeadingFont        string     `db:"heading_font"`
	BodyFont           string     `db:"body_font"`
	GoogleAnalyticsID  string     `db:"google_analytics_id"`
	GoogleTagManagerID string     `db:"google_tag_manager_id"`
	IsDefault          bool       `db:"is_default"`
	SuspendedAt        *time.Time `db:"suspended_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// RedirectCandidate is one row from a redirect-candidate query.  Slug and
// target are nullable so a malformed row never aborts the whole scan; the
// fetcher skips rows with an empty slug or target.
type RedirectCandidate struct {
	Slug           sql.NullString `db:"slug"`
	RedirectTarget sql.NullString `db:"redirect_target"`
}
