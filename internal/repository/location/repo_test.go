package location

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/provdir/internal/db"
	"github.com/kailas-cloud/provdir/internal/domain"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

func TestCandidates_JoinsListings(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.IndexName != "test:locations:idx" {
			t.Errorf("index = %q", q.IndexName)
		}
		if q.Offset != 0 || q.Limit != DefaultBatchSize {
			t.Errorf("window = %d/%d, want 0/%d", q.Offset, q.Limit, DefaultBatchSize)
		}
		return &db.SearchResult{Total: 3, Entries: []db.SearchEntry{
			{Key: "test:location:a", Fields: locationHash("a", "L1", "in_home")},
			{Key: "test:location:b", Fields: locationHash("b", "L2", "both")},
			{Key: "test:location:c", Fields: locationHash("c", "L1", "center_based")},
		}}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		want := []string{"test:listing:L1", "test:listing:L2"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("listing keys = %v, want %v", keys, want)
		}
		return []map[string]string{listingHash("L1", "pro"), listingHash("L2", "")}, nil
	}

	got, err := repo.Candidates(context.Background(), filter.Expression{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Listing.ID != "L1" || got[0].Listing.PlanTier != directory.TierPro {
		t.Errorf("row 0 listing = %+v", got[0].Listing)
	}
	if got[1].Listing.PlanTier != directory.TierFree {
		t.Errorf("empty tier should parse as free, got %q", got[1].Listing.PlanTier)
	}
	if got[2].Location.ServiceMode != directory.CenterBased {
		t.Errorf("row 2 mode = %q", got[2].Location.ServiceMode)
	}
	p, ok := got[0].Location.Coordinates.Get()
	if !ok || p.Lat != 40.7357 {
		t.Errorf("coordinates = %+v, %v", p, ok)
	}
	if !reflect.DeepEqual(got[0].Location.Insurances, []string{"Aetna", "Cigna"}) {
		t.Errorf("insurances = %v", got[0].Location.Insurances)
	}
}

func TestCandidates_SkipsOrphansAndInvalid(t *testing.T) {
	repo, ms := newTestRepo(t)

	bad := locationHash("bad", "L1", "drive_thru")
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 3, Entries: []db.SearchEntry{
			{Key: "test:location:a", Fields: locationHash("a", "L1", "in_home")},
			{Key: "test:location:orphan", Fields: locationHash("orphan", "gone", "in_home")},
			{Key: "test:location:bad", Fields: bad},
		}}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{listingHash("L1", "free"), {}}, nil
	}

	got, err := repo.Candidates(context.Background(), filter.Expression{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Location.ID != "a" {
		t.Errorf("got %d rows, want only location a", len(got))
	}
}

func TestCandidates_MissingCoordinates(t *testing.T) {
	repo, ms := newTestRepo(t)

	h := locationHash("a", "L1", "in_home")
	delete(h, "lng")
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{{Key: "k", Fields: h}}}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{listingHash("L1", "free")}, nil
	}

	got, err := repo.Candidates(context.Background(), filter.Expression{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Location.Coordinates.IsSet() {
		t.Error("half coordinates should be unknown")
	}
}

func TestCandidates_SearchError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return nil, &db.Error{Op: db.OpSearch, Err: errors.New("boom")}
	}

	_, err := repo.Candidates(context.Background(), filter.Expression{}, 0)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

func TestCandidates_ReadsEveryWindow(t *testing.T) {
	repo, ms := newTestRepo(t)
	repo.batch = 2

	var entries []db.SearchEntry
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, db.SearchEntry{Key: "test:location:" + id, Fields: locationHash(id, "L1", "in_home")})
	}
	var windows []int
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		windows = append(windows, q.Offset)
		return pagedResult(entries, q), nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		if len(keys) != 1 {
			t.Errorf("listing keys = %v, want one shared listing", keys)
		}
		return []map[string]string{listingHash("L1", "free")}, nil
	}

	got, err := repo.Candidates(context.Background(), filter.Expression{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{0, 2, 4}; !reflect.DeepEqual(windows, want) {
		t.Errorf("window offsets = %v, want %v", windows, want)
	}
	if len(got) != 5 || got[4].Location.ID != "e" {
		t.Errorf("got %d rows, want all 5 ending with e", len(got))
	}
}

func TestCandidates_CapExceeded(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 1001, Entries: []db.SearchEntry{
			{Key: "test:location:a", Fields: locationHash("a", "L1", "in_home")},
		}}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		t.Fatal("listings must not be loaded past the cap")
		return nil, nil
	}

	_, err := repo.Candidates(context.Background(), filter.Expression{}, 1000)
	if !errors.Is(err, domain.ErrTooManyCandidates) {
		t.Errorf("expected ErrTooManyCandidates, got %v", err)
	}
}

func TestLocationCounts(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchCountMultiFn = func(_ context.Context, qs []db.CountQuery) ([]int, error) {
		if len(qs) != 2 {
			t.Fatalf("queries = %d, want 2 (deduplicated)", len(qs))
		}
		if got := qs[0].Filters.String(); got != "listing_id=L1" {
			t.Errorf("filter = %q", got)
		}
		return []int{3, 1}, nil
	}

	counts, err := repo.LocationCounts(context.Background(), []string{"L1", "L2", "L1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["L1"] != 3 || counts["L2"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestLocationCounts_Empty(t *testing.T) {
	repo, _ := newTestRepo(t)
	counts, err := repo.LocationCounts(context.Background(), nil)
	if err != nil || len(counts) != 0 {
		t.Errorf("got %v, %v", counts, err)
	}
}

func TestUpsert_DenormalizesListing(t *testing.T) {
	repo, ms := newTestRepo(t)

	listing := directory.Listing{
		ID: "L1", AgencyName: "Bright Steps", PlanTier: directory.TierEnterprise,
		AcceptingClients: true, Languages: []string{"English", "Spanish"},
		Delivery: []string{"telehealth"}, GoogleRating: optional.Of(4.8),
	}
	loc := directory.Location{
		ID: "a", ListingID: "L1", City: "Newark", State: "NJ",
		ServiceMode: directory.InHome, Insurances: []string{"Aetna", "Blue Cross, Blue Shield"},
		Coordinates: optional.Of(geo.Point{Lat: 40.7, Lng: -74.2}), ServiceRadiusMiles: 20,
	}

	var written []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		written = items
		return nil
	}

	if err := repo.Upsert(context.Background(), listing, []directory.Location{loc}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("items = %d, want 2", len(written))
	}
	if written[0].Key != "test:listing:L1" || written[1].Key != "test:location:a" {
		t.Errorf("keys = %q, %q", written[0].Key, written[1].Key)
	}
	f := written[1].Fields
	if f["accepting_clients"] != "true" || f["plan_tier"] != "enterprise" || f["delivery"] != "telehealth" {
		t.Errorf("listing fields not denormalized: %v", f)
	}
	if f["insurances"] != "Aetna,Blue Cross  Blue Shield" {
		t.Errorf("insurances = %q", f["insurances"])
	}

	back, err := parseLocationFields(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.ServiceRadiusMiles != 20 || !back.Coordinates.IsSet() {
		t.Errorf("round trip lost fields: %+v", back)
	}
}

func TestEnsureIndex(t *testing.T) {
	repo, ms := newTestRepo(t)

	var def *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, d *db.IndexDefinition) error {
		def = d
		return nil
	}
	created, err := repo.EnsureIndex(context.Background())
	if err != nil || !created {
		t.Fatalf("created=%v err=%v", created, err)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "test:location:" {
		t.Errorf("prefixes = %v", def.Prefixes)
	}
	fields := make(map[string]db.IndexField, len(def.Fields))
	for _, f := range def.Fields {
		fields[f.Name] = f
	}
	if f, ok := fields["state"]; !ok || f.Type != db.IndexFieldTag || !f.TagCaseSensitive {
		t.Errorf("state field = %+v, want case-sensitive TAG", f)
	}
	if f := fields["city"]; f.TagCaseSensitive {
		t.Error("city must stay case-insensitive")
	}
	if f, ok := fields["listing_id"]; !ok || f.Type != db.IndexFieldTag {
		t.Errorf("listing_id field = %+v", f)
	}
	if f, ok := fields["lat"]; !ok || f.Type != db.IndexFieldNumeric {
		t.Errorf("lat field = %+v", f)
	}

	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error { return db.ErrIndexExists }
	created, err = repo.EnsureIndex(context.Background())
	if err != nil || created {
		t.Errorf("existing index: created=%v err=%v", created, err)
	}
}
