// internal/redirect/fetcher.go
//
// Redirect candidate fetcher.
//
// Context
// -------
// A tenant's redirect map is assembled from two content collections, queried
// in parallel and merged in the fixed order content.MergeOrder.  The later
// collection wins slug collisions; that ordering is a contract (asserted in
// tests), not an accident of scheduling.
package redirect

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"go.uber.org/zap"

	"github.com/steef2323/niche-blog-platform-sub001/internal/content"
)

// DefaultMaxRecords bounds each collection query.
const DefaultMaxRecords = 100

// Fetcher builds slug → target maps from the content backend.
type Fetcher struct {
	backend content.Backend
	limit   int
}

// NewFetcher constructs a Fetcher.  limit <= 0 selects DefaultMaxRecords.
func NewFetcher(backend content.Backend, limit int) *Fetcher {
	if limit <= 0 {
		limit = DefaultMaxRecords
	}
	return &Fetcher{backend: backend, limit: limit}
}

// Fetch queries both collections in parallel and merges the results.  hints
// may carry a pre-filtered view name per collection; missing hints fall back
// to explicit tenant filters inside the backend.
//
// A single failed collection degrades to a partial map.  The returned error
// is non-nil only when every collection query failed; even then the map is
// valid (empty), never nil.
func (f *Fetcher) Fetch(ctx context.Context, tenantID string, hints map[content.Collection]string) (map[string]string, error) {
	var (
		results [len(content.MergeOrder)][]content.RedirectCandidate
		errs    [len(content.MergeOrder)]error
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, col := range content.MergeOrder {
		i, col := i, col
		g.Go(func() error {
			rows, err := f.backend.QueryRedirectCandidates(gctx, tenantID, col, hints[col], f.limit)
			if err != nil {
				// One failed collection must not cancel the other.
				zap.S().Warnw("redirect candidate query failed",
					"tenant", tenantID, "collection", col, "err", err)
				errs[i] = err
				return nil
			}
			results[i] = rows
			return nil
		})
	}
	_ = g.Wait()

	allFailed := true
	for _, err := range errs {
		if err == nil {
			allFailed = false
		}
	}
	if allFailed {
		return map[string]string{}, fmt.Errorf("redirect fetch for tenant %s: all collections failed: %w", tenantID, errs[len(errs)-1])
	}

	// Merge in fixed order; the last collection overwrites on collision.
	merged := make(map[string]string)
	for _, rows := range results {
		for _, r := range rows {
			if !r.Slug.Valid || r.Slug.String == "" {
				continue
			}
			if !r.RedirectTarget.Valid || r.RedirectTarget.String == "" {
				continue
			}
			merged[r.Slug.String] = r.RedirectTarget.String
		}
	}
	return merged, nil
}

// backgroundFetchBudget bounds fetches that run detached from any request:
// refresher ticks and coordinator flights that outlive their caller.
const backgroundFetchBudget = 30 * time.Second
