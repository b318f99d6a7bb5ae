// internal/content/sql_test.go
//
// Unit-tests for the SQL backend adapter using sqlmock.
//
// Run: go test ./internal/content -v

package content

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var tenantCols = []string{
	"id", "domain", "local_domain", "title", "logo_url", "footer_text",
	"contact_email", "primary_color", "secondary_color", "accent_color",
	"background_color", "text_color", "heading_font", "body_font",
	"google_analytics_id", "google_tag_manager_id", "is_default",
	"suspended_at", "deleted_at", "created_at", "updated_at",
}

// tenantRow builds one full-width row with sensible zero values, so tests
// only spell out the fields they care about.
func tenantRow(id, domain, localDomain string, isDefault bool) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, domain, localDomain, "A Blog", "", "", "", "", "", "", "", "",
		"", "", "GA-1", "", isDefault, nil, nil, now, now,
	}
}

func newMock(t *testing.T) (*SQL, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewSQL(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func TestFindTenantByDomain(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM\s+tenant\s+WHERE\s+\(domain = \? OR \(\? <> '' AND local_domain = \?\)\)`).
		WithArgs("example.com", "localhost:3000", "localhost:3000").
		WillReturnRows(sqlmock.NewRows(tenantCols).
			AddRow(tenantRow("rec1", "example.com", "localhost:3000", false)...))

	rec, err := s.FindTenantByDomain(context.Background(), "example.com", "localhost:3000")
	if err != nil {
		t.Fatalf("FindTenantByDomain error: %v", err)
	}
	if rec.ID != "rec1" || rec.Domain != "example.com" || rec.GoogleAnalyticsID != "GA-1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestFindTenantByDomain_NoRows(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM\s+tenant`).
		WillReturnRows(sqlmock.NewRows(tenantCols))

	_, err := s.FindTenantByDomain(context.Background(), "nobody.example", "")
	if !errors.Is(err, ErrNoTenant) {
		t.Fatalf("err = %v, want ErrNoTenant", err)
	}
}

func TestFindFallbackTenant(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM\s+tenant\s+WHERE\s+is_default = TRUE`).
		WillReturnRows(sqlmock.NewRows(tenantCols).
			AddRow(tenantRow("rec0", "default.example", "", true)...))

	rec, err := s.FindFallbackTenant(context.Background())
	if err != nil {
		t.Fatalf("FindFallbackTenant error: %v", err)
	}
	if !rec.IsDefault || rec.ID != "rec0" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestViewBindings(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT collection, view_name FROM tenant_view WHERE tenant_id = ?`,
	)).
		WithArgs("rec1").
		WillReturnRows(sqlmock.NewRows([]string{"collection", "view_name"}).
			AddRow("posts", "Published posts rec1").
			AddRow("listicles", "Published listicles rec1"))

	got, err := s.ViewBindings(context.Background(), "rec1")
	if err != nil {
		t.Fatalf("ViewBindings error: %v", err)
	}
	if got[CollectionPosts] != "Published posts rec1" || got[CollectionListicles] != "Published listicles rec1" {
		t.Fatalf("unexpected bindings: %#v", got)
	}
}

func TestQueryRedirectCandidates_ViewPreferred(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT slug, redirect_target\s+FROM\s+post_view\s+WHERE\s+view_name = \?`).
		WithArgs("Redirects rec1", 100).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "redirect_target"}).
			AddRow("guide-a", "/guides/a"))

	rows, err := s.QueryRedirectCandidates(context.Background(), "rec1", CollectionPosts, "Redirects rec1", 100)
	if err != nil {
		t.Fatalf("QueryRedirectCandidates error: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug.String != "guide-a" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestQueryRedirectCandidates_ViewFallsBackToFilter(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	// Empty view result → explicit tenant filter on the base table.
	mock.ExpectQuery(`FROM\s+listicle_view\s+WHERE\s+view_name = \?`).
		WithArgs("stale view", 100).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "redirect_target"}))
	mock.ExpectQuery(`FROM\s+listicle\s+WHERE\s+tenant_id = \?`).
		WithArgs("rec1", 100).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "redirect_target"}).
			AddRow("top-10", "https://elsewhere.example/top-10"))

	rows, err := s.QueryRedirectCandidates(context.Background(), "rec1", CollectionListicles, "stale view", 100)
	if err != nil {
		t.Fatalf("QueryRedirectCandidates error: %v", err)
	}
	if len(rows) != 1 || rows[0].RedirectTarget.String != "https://elsewhere.example/top-10" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestQueryRedirectCandidates_NullColumnsScan(t *testing.T) {
	s, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`FROM\s+post\s+WHERE\s+tenant_id = \?`).
		WithArgs("rec1", 100).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "redirect_target"}).
			AddRow(nil, "/x").
			AddRow("ok", "/y"))

	rows, err := s.QueryRedirectCandidates(context.Background(), "rec1", CollectionPosts, "", 100)
	if err != nil {
		t.Fatalf("a NULL column aborted the batch: %v", err)
	}
	if len(rows) != 2 || rows[0].Slug.Valid {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestQueryRedirectCandidates_UnknownCollection(t *testing.T) {
	s, _, done := newMock(t)
	defer done()

	if _, err := s.QueryRedirectCandidates(context.Background(), "rec1", Collection("pages"), "", 100); err == nil {
		t.Fatal("expected error for unknown collection")
	}
}
