package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/provdir/internal/db"
	"github.com/kailas-cloud/provdir/internal/domain"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
	"github.com/kailas-cloud/provdir/internal/domain/search/predicate"
)

// DefaultBatchSize is the FT.SEARCH window used to read candidate sets.
const DefaultBatchSize = 500

// store is the consumer interface for locations (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCountMulti(ctx context.Context, qs []db.CountQuery) ([]int, error)
}

// Repo implements usecase/location.Repository over Redis hashes.
type Repo struct {
	store  store
	prefix string
	batch  int
}

// New creates a location repository. keyPrefix namespaces every key and index.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix, batch: DefaultBatchSize}
}

// IndexName returns the FT index over location hashes.
func (r *Repo) IndexName() string { return r.prefix + "locations:idx" }

func (r *Repo) locationKey(id string) string { return r.prefix + "location:" + id }
func (r *Repo) listingKey(id string) string  { return r.prefix + "listing:" + id }

func (r *Repo) indexDefinition() (*db.IndexDefinition, error) {
	return db.NewIndex(r.IndexName()).
		Prefix(r.prefix+"location:").
		TagWithOpts(predicate.FieldState, db.DefaultTagSeparator, true).
		Tag(predicate.FieldCity).
		Tag(predicate.FieldServiceMode).
		TagWithOpts(predicate.FieldInsurances, tagSeparator, false).
		TagWithOpts(predicate.FieldLanguages, tagSeparator, false).
		TagWithOpts(predicate.FieldDelivery, tagSeparator, false).
		Tag(predicate.FieldAcceptingClients).
		TagWithOpts(predicate.FieldListingID, tagSeparator, true).
		Tag(fieldPlanTier).
		Numeric(fieldLat).
		Numeric(fieldLng).
		Build()
}

// EnsureIndex creates the location index. created is false when it already existed.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	def, err := r.indexDefinition()
	if err != nil {
		return false, fmt.Errorf("build location index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create location index: %w", err)
	}
	return true, nil
}

// IndexExists reports whether the location index is present.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	return r.store.IndexExists(ctx, r.IndexName())
}

// Upsert writes a listing and its locations in one pipelined round trip.
func (r *Repo) Upsert(ctx context.Context, listing directory.Listing, locations []directory.Location) error {
	items := make([]db.HashSetItem, 0, 1+len(locations))
	items = append(items, db.HashSetItem{
		Key:    r.listingKey(listing.ID),
		Fields: buildListingFields(&listing),
	})
	for i := range locations {
		items = append(items, db.HashSetItem{
			Key:    r.locationKey(locations[i].ID),
			Fields: buildLocationFields(&locations[i], &listing),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert listing %s: %w", listing.ID, err)
	}
	return nil
}

// Candidates loads every location matching expr, each joined with its
// listing. maxRows > 0 caps the match count: a larger set fails with
// domain.ErrTooManyCandidates before anything is loaded. Locations whose
// listing is missing or whose stored fields fail validation are skipped.
func (r *Repo) Candidates(
	ctx context.Context, expr filter.Expression, maxRows int,
) ([]directory.LocationResult, error) {
	entries, err := db.ListAll(ctx, r.store, &db.ListQuery{IndexName: r.IndexName(), Filters: expr}, r.batch, maxRows)
	if errors.Is(err, db.ErrTooManyResults) {
		return nil, fmt.Errorf("%w: %w", domain.ErrTooManyCandidates, err)
	}
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}

	locations := make([]directory.Location, 0, len(entries))
	var listingKeys []string
	listingIdx := make(map[string]int)
	for _, e := range entries {
		loc, err := parseLocationFields(e.Fields)
		if err != nil || loc.ID == "" || loc.ListingID == "" {
			continue
		}
		locations = append(locations, loc)
		if _, seen := listingIdx[loc.ListingID]; !seen {
			listingIdx[loc.ListingID] = len(listingKeys)
			listingKeys = append(listingKeys, r.listingKey(loc.ListingID))
		}
	}
	if len(locations) == 0 {
		return nil, nil
	}

	raw, err := r.store.HGetAllMulti(ctx, listingKeys)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	listings := make([]*directory.Listing, len(raw))
	for i, m := range raw {
		if len(m) == 0 {
			continue
		}
		l, err := parseListingFields(m)
		if err != nil {
			continue
		}
		listings[i] = &l
	}

	out := make([]directory.LocationResult, 0, len(locations))
	for _, loc := range locations {
		l := listings[listingIdx[loc.ListingID]]
		if l == nil {
			continue
		}
		out = append(out, directory.LocationResult{Location: loc, Listing: *l})
	}
	return out, nil
}

// LocationCounts returns the number of locations per listing id.
// Ids are counted in one pipelined round trip.
func (r *Repo) LocationCounts(ctx context.Context, listingIDs []string) (map[string]int, error) {
	if len(listingIDs) == 0 {
		return map[string]int{}, nil
	}

	ids := make([]string, 0, len(listingIDs))
	seen := make(map[string]struct{}, len(listingIDs))
	queries := make([]db.CountQuery, 0, len(listingIDs))
	for _, id := range listingIDs {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}

		cond, err := filter.NewMatch(predicate.FieldListingID, id)
		if err != nil {
			return nil, err
		}
		expr, err := filter.NewExpression([]filter.Condition{cond}, nil)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		queries = append(queries, db.CountQuery{IndexName: r.IndexName(), Filters: expr})
	}

	counts, err := r.store.SearchCountMulti(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("count listing locations: %w", err)
	}

	out := make(map[string]int, len(ids))
	for i, id := range ids {
		out[id] = counts[i]
	}
	return out, nil
}
