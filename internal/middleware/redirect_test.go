// internal/middleware/redirect_test.go
//
// Unit-tests for the Resolve and Redirects middleware.
//
// Workflow / Structure
// --------------------
// fakeBackend ── minimal content.Backend that serves one tenant and one
// redirect slug, so the full resolver can be wired without a database.
//
// Each sub-test:
//
//   1. Builds a resolver over the fake backend.
//   2. Wraps a probe handler with the middleware under test.
//   3. Fires an httptest request and asserts status / Location header.

package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
	"github.com/steef2323/niche-blog-platform-sub001/internal/hostkey"
	"github.com/steef2323/niche-blog-platform-sub001/internal/redirect"
	"github.com/steef2323/niche-blog-platform-sub001/internal/resolver"
	"github.com/steef2323/niche-blog-platform-sub001/internal/tenant"
)

type fakeBackend struct{}

func (fakeBackend) FindTenantByDomain(ctx context.Context, domain, alias string) (*content.TenantRecord, error) {
	if domain == "example.com" {
		return &content.TenantRecord{ID: "rec1", Domain: "example.com", Title: "Example"}, nil
	}
	return nil, content.ErrNoTenant
}

func (fakeBackend) FindFallbackTenant(ctx context.Context) (*content.TenantRecord, error) {
	return nil, content.ErrNoTenant
}

func (fakeBackend) ViewBindings(ctx context.Context, tenantID string) (map[content.Collection]string, error) {
	return nil, nil
}

func (fakeBackend) QueryRedirectCandidates(ctx context.Context, tenantID string, col content.Collection, viewName string, limit int) ([]content.RedirectCandidate, error) {
	if col != content.CollectionPosts {
		return nil, nil
	}
	return []content.RedirectCandidate{{
		Slug:           sql.NullString{String: "old-guide", Valid: true},
		RedirectTarget: sql.NullString{String: "/guides/new", Valid: true},
	}}, nil
}

func newTestResolver(t *testing.T) *resolver.Resolver {
	t.Helper()
	fb := fakeBackend{}
	tc := tenant.NewCache(fb, hostkey.New(false, nil), nil, tenant.DefaultTTL)
	store := redirect.NewMemoryStore()
	fetcher := redirect.NewFetcher(fb, 100)
	res := resolver.New(
		tc,
		redirect.NewCoordinator(store, fetcher, time.Hour, time.Second),
		redirect.NewRefresher(fetcher, store, time.Hour),
	)
	t.Cleanup(res.Close)
	return res
}

func TestResolve_KnownHost(t *testing.T) {
	res := newTestResolver(t)

	var gotID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := TenantFrom(r.Context())
		if !ok {
			t.Fatal("tenant missing from context")
		}
		gotID = cfg.ID
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	rr := httptest.NewRecorder()
	Resolve(res)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotID != "rec1" {
		t.Fatalf("tenant id = %q, want rec1", gotID)
	}
}

func TestResolve_UnknownHost404(t *testing.T) {
	res := newTestResolver(t)

	req := httptest.NewRequest(http.MethodGet, "http://nobody.example/", nil)
	rr := httptest.NewRecorder()
	Resolve(res)(http.NotFoundHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestRedirects_SlugHit308(t *testing.T) {
	res := newTestResolver(t)

	handler := Resolve(res)(Redirects(res)(http.NotFoundHandler()))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/old-guide", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/guides/new" {
		t.Fatalf("Location = %q, want /guides/new", loc)
	}
}

func TestRedirects_MissFallsThrough(t *testing.T) {
	res := newTestResolver(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Resolve(res)(Redirects(res)(next))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/plain-page", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 fall-through", rr.Code)
	}
}

func TestRedirects_MultiSegmentPathSkipped(t *testing.T) {
	res := newTestResolver(t)

	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	handler := Resolve(res)(Redirects(res)(next))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/blog/old-guide", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !reached {
		t.Fatal("multi-segment path must bypass the redirect check")
	}
}
