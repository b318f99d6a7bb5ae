// internal/redirect/store_test.go
//
// Unit-tests for the in-memory redirect store.
//
// Run: go test ./internal/redirect -v

package redirect

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ReplaceAndLookup(t *testing.T) {
	s := NewMemoryStore()

	require.False(t, s.Loaded("t1"))
	_, ok := s.Lookup("t1", "guide-a")
	require.False(t, ok)

	s.Replace("t1", map[string]string{"guide-a": "/guides/a"}, time.Now())
	target, ok := s.Lookup("t1", "guide-a")
	require.True(t, ok)
	require.Equal(t, "/guides/a", target)
	require.True(t, s.Loaded("t1"))

	// Wholesale swap: the old slug disappears with the new map.
	s.Replace("t1", map[string]string{"guide-b": "/guides/b"}, time.Now())
	_, ok = s.Lookup("t1", "guide-a")
	require.False(t, ok)
	target, _ = s.Lookup("t1", "guide-b")
	require.Equal(t, "/guides/b", target)
}

func TestMemoryStore_MonotonicFetchStartGuard(t *testing.T) {
	s := NewMemoryStore()
	t0 := time.Now()

	newer := t0.Add(time.Second)
	older := t0

	require.True(t, s.Replace("t1", map[string]string{"s": "new"}, newer))
	require.False(t, s.Replace("t1", map[string]string{"s": "old"}, older),
		"a fetch that started earlier must not overwrite a later one")

	target, _ := s.Lookup("t1", "s")
	require.Equal(t, "new", target)

	// Equal start time is accepted (same fetch retried).
	require.True(t, s.Replace("t1", map[string]string{"s": "same"}, newer))
}

func TestMemoryStore_Freshness(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now()
	var mu sync.Mutex
	now := base
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	require.False(t, s.Fresh("t1", 15*time.Minute), "never fetched is never fresh")

	s.Replace("t1", map[string]string{}, base)
	require.True(t, s.Fresh("t1", 15*time.Minute))

	mu.Lock()
	now = base.Add(16 * time.Minute)
	mu.Unlock()
	require.False(t, s.Fresh("t1", 15*time.Minute))
	require.True(t, s.Loaded("t1"), "stale is still loaded")
}

func TestMemoryStore_TenantsIsolated(t *testing.T) {
	s := NewMemoryStore()
	s.Replace("t1", map[string]string{"s": "/one"}, time.Now())
	s.Replace("t2", map[string]string{"s": "/two"}, time.Now())

	one, _ := s.Lookup("t1", "s")
	two, _ := s.Lookup("t2", "s")
	require.Equal(t, "/one", one)
	require.Equal(t, "/two", two)
}
