// internal/tenant/merge.go
//
// Backend-record + static-override merge.
//
// Context
// -------
// Operators may declare partial tenant configs in `conf/global.yaml`
// (config.TenantOverride).  Backend-fetched values take precedence for
// fields that change at runtime; a statically declared value is
// authoritative only when the backend provides no value.  The merge runs
// once per cache load and produces an immutable Config.
package tenant

import (
	"github.com/steef2323/niche-blog-platform-sub001/internal/config"
	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
)

// newConfig folds one backend record, its view bindings, and a static
// override into a Config.
func newConfig(rec *content.TenantRecord, views map[content.Collection]string, ov config.TenantOverride) *Config {
	return &Config{
		ID:           rec.ID,
		Domain:       rec.Domain,
		LocalDomain:  rec.LocalDomain,
		Title:        pick(rec.Title, ov.Title),
		LogoURL:      pick(rec.LogoURL, ov.LogoURL),
		FooterText:   pick(rec.FooterText, ov.FooterText),
		ContactEmail: pick(rec.ContactEmail, ov.ContactEmail),
		Theme: Theme{
			PrimaryColor:    pick(rec.PrimaryColor, ov.Theme.PrimaryColor),
			SecondaryColor:  pick(rec.SecondaryColor, ov.Theme.SecondaryColor),
			AccentColor:     pick(rec.AccentColor, ov.Theme.AccentColor),
			BackgroundColor: pick(rec.BackgroundColor, ov.Theme.BackgroundColor),
			TextColor:       pick(rec.TextColor, ov.Theme.TextColor),
			HeadingFont:     pick(rec.HeadingFont, ov.Theme.HeadingFont),
			BodyFont:        pick(rec.BodyFont, ov.Theme.BodyFont),
		},
		GoogleAnalyticsID:  pick(rec.GoogleAnalyticsID, ov.GoogleAnalyticsID),
		GoogleTagManagerID: pick(rec.GoogleTagManagerID, ov.GoogleTagManagerID),
		ViewBindings:       views,
	}
}

// pick prefers the backend value; the override fills blanks only.
func pick(backend, override string) string {
	if backend != "" {
		return backend
	}
	return override
}
