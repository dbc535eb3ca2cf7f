package location

import (
	"context"
	"testing"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

type mockCandidates struct {
	candidatesFn func(ctx context.Context, expr filter.Expression, limit int) ([]directory.LocationResult, error)
}

func (m *mockCandidates) Candidates(
	ctx context.Context, expr filter.Expression, limit int,
) ([]directory.LocationResult, error) {
	if m.candidatesFn != nil {
		return m.candidatesFn(ctx, expr, limit)
	}
	return nil, nil
}

type mockCounter struct {
	countsFn func(ctx context.Context, listingIDs []string) (map[string]int, error)
}

func (m *mockCounter) LocationCounts(ctx context.Context, listingIDs []string) (map[string]int, error) {
	if m.countsFn != nil {
		return m.countsFn(ctx, listingIDs)
	}
	return map[string]int{}, nil
}

func newTestService(t *testing.T, rows []directory.LocationResult) (*Service, *mockCandidates, *mockCounter) {
	t.Helper()
	mc := &mockCandidates{
		candidatesFn: func(_ context.Context, _ filter.Expression, _ int) ([]directory.LocationResult, error) {
			out := make([]directory.LocationResult, len(rows))
			copy(out, rows)
			return out, nil
		},
	}
	cnt := &mockCounter{}
	return New(mc, cnt, 100), mc, cnt
}

type rowOpt func(*directory.LocationResult)

func featured() rowOpt { return func(r *directory.LocationResult) { r.Location.IsFeatured = true } }

func tier(t directory.PlanTier) rowOpt {
	return func(r *directory.LocationResult) { r.Listing.PlanTier = t }
}

func at(lat, lng float64) rowOpt {
	return func(r *directory.LocationResult) {
		r.Location.Coordinates = optional.Of(geo.Point{Lat: lat, Lng: lng})
	}
}

func mode(m directory.ServiceMode, radius float64) rowOpt {
	return func(r *directory.LocationResult) {
		r.Location.ServiceMode = m
		r.Location.ServiceRadiusMiles = radius
	}
}

func listing(id, name string) rowOpt {
	return func(r *directory.LocationResult) {
		r.Location.ListingID = id
		r.Listing.ID = id
		r.Listing.AgencyName = name
	}
}

func city(c string) rowOpt { return func(r *directory.LocationResult) { r.Location.City = c } }

func testRow(id string, opts ...rowOpt) directory.LocationResult {
	r := directory.LocationResult{
		Location: directory.Location{ID: id, ListingID: "L-" + id, ServiceMode: directory.InHome, ServiceRadiusMiles: 10},
		Listing:  directory.Listing{ID: "L-" + id, AgencyName: "Agency " + id, PlanTier: directory.TierFree},
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func ids(rows []directory.LocationResult) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Location.ID
	}
	return out
}
