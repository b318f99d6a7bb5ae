// internal/redirect/store.go
//
// Redirect cache store (interface + in-memory implementation).
//
// Context
// -------
// The store holds at most one slug → target map per tenant.  A successful
// fetch replaces the whole map atomically, so readers never observe a
// partially updated mapping.  Freshness is judged from the last write
// timestamp against the refresher interval; the store itself never fetches.
//
// Store is an interface so tests can substitute deterministic fakes and
// production can swap in a shared external store (see redis.go) without
// touching call sites.
//
// Notes
// -----
// • Replace takes ownership of the supplied map; callers must not mutate it
//   afterwards.  Fetches build a fresh map every time, never a patch.
// • The fetchStart guard keeps per-tenant freshness monotonic: a write from
//   a fetch that started earlier than the one already stored is dropped.
// • Oxford commas, two spaces after periods.
package redirect

import (
	"sync"
	"time"
)

// Store is the per-tenant redirect map store.
type Store interface {
	// Lookup returns the target for (tenantID, slug).  ok is false both for
	// an absent slug and for a tenant never fetched; the coordinator owns
	// that distinction.
	Lookup(tenantID, slug string) (target string, ok bool)

	// Replace swaps in a wholesale new mapping.  fetchStart is the time the
	// producing fetch began; writes from older fetches are rejected and
	// Replace reports whether the write was applied.
	Replace(tenantID string, mapping map[string]string, fetchStart time.Time) bool

	// Fresh reports whether the tenant's map was written within maxAge.
	Fresh(tenantID string, maxAge time.Duration) bool

	// Loaded reports whether any map was ever written for the tenant.
	Loaded(tenantID string) bool
}

//
// In-memory implementation
//

type memEntry struct {
	mapping    map[string]string
	fetchedAt  time.Time
	fetchStart time.Time
}

// MemoryStore is the process-local Store.  Zero value is unusable;
// construct with NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[string]*memEntry

	now func() time.Time // swapped in tests
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants: make(map[string]*memEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Lookup(tenantID, slug string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ent, ok := s.tenants[tenantID]
	if !ok {
		return "", false
	}
	target, ok := ent.mapping[slug]
	return target, ok
}

func (s *MemoryStore) Replace(tenantID string, mapping map[string]string, fetchStart time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.tenants[tenantID]; ok && cur.fetchStart.After(fetchStart) {
		return false
	}
	s.tenants[tenantID] = &memEntry{
		mapping:    mapping,
		fetchedAt:  s.now(),
		fetchStart: fetchStart,
	}
	return true
}

func (s *MemoryStore) Fresh(tenantID string, maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ent, ok := s.tenants[tenantID]
	return ok && s.now().Sub(ent.fetchedAt) < maxAge
}

func (s *MemoryStore) Loaded(tenantID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tenants[tenantID]
	return ok
}
