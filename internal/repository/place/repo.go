package place

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

// store is the consumer interface for directory places (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo implements usecase/place.Repository over Redis hashes.
type Repo struct {
	store  store
	prefix string
	batch  int
}

// New creates a place repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix, batch: DefaultBatchSize}
}

// IndexName returns the FT index over place hashes.
func (r *Repo) IndexName() string { return r.prefix + "places:idx" }

func (r *Repo) placeKey(id string) string { return r.prefix + "place:" + id }

// EnsureIndex creates the place index. created is false when it already existed.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	def, err := db.NewIndex(r.IndexName()).
		Prefix(r.prefix + "place:").
		TagWithOpts(predicate.FieldState, db.DefaultTagSeparator, true).
		Tag(predicate.FieldCity).
		Build()
	if err != nil {
		return false, fmt.Errorf("build place index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create place index: %w", err)
	}
	return true, nil
}

// IndexExists reports whether the place index is present.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	return r.store.IndexExists(ctx, r.IndexName())
}

// Upsert writes places in one pipelined round trip.
func (r *Repo) Upsert(ctx context.Context, places []directory.Place) error {
	if len(places) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(places))
	for i := range places {
		items[i] = db.HashSetItem{
			Key:    r.placeKey(places[i].ID),
			Fields: buildHashFields(&places[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert places: %w", err)
	}
	return nil
}

// Candidates loads every place matching expr. maxRows > 0 caps the match
// count: a larger set fails with domain.ErrTooManyCandidates.
func (r *Repo) Candidates(ctx context.Context, expr filter.Expression, maxRows int) ([]directory.PlaceResult, error) {
	entries, err := db.ListAll(ctx, r.store, &db.ListQuery{IndexName: r.IndexName(), Filters: expr}, r.batch, maxRows)
	if errors.Is(err, db.ErrTooManyResults) {
		return nil, fmt.Errorf("%w: %w", domain.ErrTooManyCandidates, err)
	}
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}

	out := make([]directory.PlaceResult, 0, len(entries))
	for _, e := range entries {
		p := parseHashFields(e.Fields)
		if p.ID == "" {
			continue
		}
		out = append(out, directory.PlaceResult{Place: p})
	}
	return out, nil
}
