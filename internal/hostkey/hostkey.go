// internal/hostkey/hostkey.go
//
// Host-header canonicalization.
//
// Context
// -------
// Every tenant is addressed by a normalized domain key, never by the raw
// Host header.  `Normalizer.Normalize` lower-cases the input, strips scheme,
// "www.", and trailing slash, and in production additionally strips the
// ":port" suffix.  In development the port survives and feeds a small
// port → host-key table so several tenants can be exercised locally without
// /etc/hosts tricks.
//
// Notes
// -----
// • Normalize never errors; garbage input yields a key that simply misses
//   in the tenant table downstream.
// • Normalize is idempotent: applying it twice equals applying it once.
// • Oxford commas, two spaces after periods.
package hostkey

import "strings"

// Normalizer converts raw Host headers into tenant lookup keys.
type Normalizer struct {
	keepPort    bool
	portAliases map[string]string // "3000" → "localhost:3000"
}

// New returns a Normalizer.  keepPort should be true in development mode.
// portAliases may be nil; it is only consulted when keepPort is true.
func New(keepPort bool, portAliases map[string]string) *Normalizer {
	return &Normalizer{keepPort: keepPort, portAliases: portAliases}
}

// Normalize canonicalizes a raw host string into a tenant key.
func (n *Normalizer) Normalize(raw string) string {
	h := strings.ToLower(strings.TrimSpace(raw))
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	h = strings.TrimPrefix(h, "www.")
	h = strings.TrimSuffix(h, "/")
	if !n.keepPort {
		h = stripPort(h)
	}
	return h
}

// Development reports whether the normalizer keeps ports, which is the
// development-mode behaviour.
func (n *Normalizer) Development() bool { return n.keepPort }

// PortAlias returns the host key a local port masquerades as, when the key
// carries a port that appears in the alias table.  The second return is
// false outside development mode or when no alias is configured.
func (n *Normalizer) PortAlias(key string) (string, bool) {
	if !n.keepPort || len(n.portAliases) == 0 {
		return "", false
	}
	i := strings.LastIndexByte(key, ':')
	if i == -1 {
		return "", false
	}
	alias, ok := n.portAliases[key[i+1:]]
	return alias, ok
}

// stripPort removes the :port suffix from a host when present.
func stripPort(h string) string {
	if i := strings.LastIndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
