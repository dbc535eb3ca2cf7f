package place

import (
	"context"
	"testing"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

type mockCandidates struct {
	candidatesFn func(ctx context.Context, expr filter.Expression, limit int) ([]directory.PlaceResult, error)
}

func (m *mockCandidates) Candidates(
	ctx context.Context, expr filter.Expression, limit int,
) ([]directory.PlaceResult, error) {
	if m.candidatesFn != nil {
		return m.candidatesFn(ctx, expr, limit)
	}
	return nil, nil
}

func newTestService(t *testing.T, rows []directory.PlaceResult) (*Service, *mockCandidates) {
	t.Helper()
	mc := &mockCandidates{
		candidatesFn: func(_ context.Context, _ filter.Expression, _ int) ([]directory.PlaceResult, error) {
			out := make([]directory.PlaceResult, len(rows))
			copy(out, rows)
			return out, nil
		},
	}
	return New(mc, 100), mc
}

func testPlace(id, name, city string, rating optional.Value[float64], coords optional.Value[geo.Point]) directory.PlaceResult {
	return directory.PlaceResult{Place: directory.Place{
		ID: id, Name: name, City: city, State: "TX", Rating: rating, Coordinates: coords,
	}}
}

func ids(rows []directory.PlaceResult) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Place.ID
	}
	return out
}

func pt(lat, lng float64) optional.Value[geo.Point] {
	return optional.Of(geo.Point{Lat: lat, Lng: lng})
}

var noRating = optional.Empty[float64]()
var noCoords = optional.Empty[geo.Point]()
