package location

import (
	"context"
	"testing"

	"github.com/kailas-cloud/provdir/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn        func(ctx context.Context, items []db.HashSetItem) error
	hgetAllMultiFn     func(ctx context.Context, keys []string) ([]map[string]string, error)
	createIndexFn      func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn      func(ctx context.Context, name string) (bool, error)
	searchListFn       func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountMultiFn func(ctx context.Context, qs []db.CountQuery) ([]int, error)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return true, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCountMulti(ctx context.Context, qs []db.CountQuery) ([]int, error) {
	if m.searchCountMultiFn != nil {
		return m.searchCountMultiFn(ctx, qs)
	}
	return make([]int, len(qs)), nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "test:"), ms
}

func locationHash(id, listingID, mode string) map[string]string {
	return map[string]string{
		"id":                   id,
		"listing_id":           listingID,
		"city":                 "Newark",
		"state":                "NJ",
		"service_mode":         mode,
		"insurances":           "Aetna,Cigna",
		"service_radius_miles": "15",
		"lat":                  "40.7357",
		"lng":                  "-74.1724",
		"is_featured":          "false",
	}
}

func listingHash(id, tier string) map[string]string {
	return map[string]string{
		"id":                id,
		"agency_name":       "Agency " + id,
		"plan_tier":         tier,
		"accepting_clients": "true",
		"languages":         "English,Spanish",
		"google_rating":     "4.5",
	}
}

// pagedResult serves the FT.SEARCH window q over entries.
func pagedResult(entries []db.SearchEntry, q *db.ListQuery) *db.SearchResult {
	start := min(q.Offset, len(entries))
	end := min(start+q.Limit, len(entries))
	return &db.SearchResult{Total: len(entries), Entries: entries[start:end]}
}
