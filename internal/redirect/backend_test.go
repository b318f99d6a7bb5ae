// internal/redirect/backend_test.go
//
// Shared stub content backend for the redirect tests.  Only the
// redirect-candidate query matters here; the tenant lookups are inert.

package redirect

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"time"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
)

type stubBackend struct {
	mu    sync.Mutex
	calls int32
	delay time.Duration

	posts        []content.RedirectCandidate
	listicles    []content.RedirectCandidate
	postsErr     error
	listiclesErr error

	gotHints map[content.Collection]string
	gotLimit int
}

func cand(slug, target string) content.RedirectCandidate {
	return content.RedirectCandidate{
		Slug:           sql.NullString{String: slug, Valid: slug != ""},
		RedirectTarget: sql.NullString{String: target, Valid: target != ""},
	}
}

func (b *stubBackend) QueryRedirectCandidates(ctx context.Context, tenantID string, col content.Collection, viewName string, limit int) ([]content.RedirectCandidate, error) {
	atomic.AddInt32(&b.calls, 1)
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gotHints == nil {
		b.gotHints = make(map[content.Collection]string)
	}
	b.gotHints[col] = viewName
	b.gotLimit = limit
	switch col {
	case content.CollectionPosts:
		return b.posts, b.postsErr
	case content.CollectionListicles:
		return b.listicles, b.listiclesErr
	}
	return nil, nil
}

func (b *stubBackend) FindTenantByDomain(ctx context.Context, domain, alias string) (*content.TenantRecord, error) {
	return nil, content.ErrNoTenant
}

func (b *stubBackend) FindFallbackTenant(ctx context.Context) (*content.TenantRecord, error) {
	return nil, content.ErrNoTenant
}

func (b *stubBackend) ViewBindings(ctx context.Context, tenantID string) (map[content.Collection]string, error) {
	return nil, nil
}

// queryCalls counts individual collection queries; one Fetch issues two.
func (b *stubBackend) queryCalls() int32 { return atomic.LoadInt32(&b.calls) }
