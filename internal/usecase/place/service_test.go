package place

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
	"github.com/kailas-cloud/provdir/internal/domain/search/mode"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
)

func TestFetch_OrderByRatingWithoutSearcher(t *testing.T) {
	rows := []directory.PlaceResult{
		testPlace("1", "zeta", "Austin", optional.Of(4.0), noCoords),
		testPlace("2", "Alpha", "Austin", optional.Of(4.0), noCoords),
		testPlace("3", "beta", "Austin", noRating, noCoords),
		testPlace("4", "Gamma", "Austin", optional.Of(4.9), noCoords),
	}
	svc, _ := newTestService(t, rows)

	got, err := svc.Fetch(context.Background(), request.Filters{}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"4", "2", "1", "3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestFetch_OrderByDistanceWithSearcher(t *testing.T) {
	rows := []directory.PlaceResult{
		testPlace("far", "Far", "Dallas", optional.Of(5.0), pt(32.78, -96.8)),
		testPlace("unknown", "Unknown", "Austin", optional.Of(5.0), noCoords),
		testPlace("near", "Near", "Austin", optional.Of(1.0), pt(30.3, -97.7)),
	}
	svc, _ := newTestService(t, rows)

	f := request.Filters{Searcher: pt(30.27, -97.74)}
	got, err := svc.Fetch(context.Background(), f, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"near", "far", "unknown"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
	if !got[0].DistanceMiles.IsSet() || got[2].DistanceMiles.IsSet() {
		t.Errorf("distances = %v / %v", got[0].DistanceMiles, got[2].DistanceMiles)
	}
}

func TestFetch_Window(t *testing.T) {
	var rows []directory.PlaceResult
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		rows = append(rows, testPlace(id, id, "Austin", noRating, noCoords))
	}
	svc, _ := newTestService(t, rows)

	got, err := svc.Fetch(context.Background(), request.Filters{}, 3, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"d", "e"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("window = %v, want %v", ids(got), want)
	}
}

func TestCount_PostFilters(t *testing.T) {
	rows := []directory.PlaceResult{
		testPlace("1", "Austin Autism Center", "Round Rock", noRating, noCoords),
		testPlace("2", "Hill Country ABA", "Austin", noRating, noCoords),
		testPlace("3", "Gulf Therapy", "Houston", noRating, noCoords),
	}
	tests := []struct {
		name string
		f    request.Filters
		want int
	}{
		{"none", request.Filters{}, 3},
		{"city", request.Filters{City: "aus"}, 1},
		{"query matches name or city", request.Filters{Query: "austin"}, 2},
		{"ignores location-only filters", request.Filters{
			ServiceModes: []mode.Mode{mode.InHome}, Insurances: []string{"Aetna"},
			AcceptingClients: optional.Of(true),
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, rows)
			n, err := svc.Count(context.Background(), tt.f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tt.want {
				t.Errorf("Count = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestCount_StatePredicate(t *testing.T) {
	svc, mc := newTestService(t, nil)
	var got string
	mc.candidatesFn = func(_ context.Context, expr filter.Expression, _ int) ([]directory.PlaceResult, error) {
		got = expr.String()
		return nil, nil
	}
	if _, err := svc.Count(context.Background(), request.Filters{State: "texas"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "state=TX|Texas" {
		t.Errorf("filter = %q", got)
	}
}

func TestCount_LoaderError(t *testing.T) {
	svc, mc := newTestService(t, nil)
	mc.candidatesFn = func(_ context.Context, _ filter.Expression, _ int) ([]directory.PlaceResult, error) {
		return nil, errors.New("down")
	}
	if _, err := svc.Count(context.Background(), request.Filters{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCompareByRating_Transitive(t *testing.T) {
	var rows []directory.PlaceResult
	ratings := []optional.Value[float64]{noRating, optional.Of(3.0), optional.Of(4.5)}
	names := []string{"alpha", "Alpha", "beta"}
	for _, r := range ratings {
		for _, n := range names {
			rows = append(rows, testPlace(string(rune('a'+len(rows))), n, "X", r, noCoords))
		}
	}
	for _, a := range rows {
		for _, b := range rows {
			if CompareByRating(a, b) != -CompareByRating(b, a) {
				t.Fatalf("antisymmetry broken for %s, %s", a.Place.ID, b.Place.ID)
			}
			for _, c := range rows {
				if CompareByRating(a, b) < 0 && CompareByRating(b, c) < 0 && CompareByRating(a, c) >= 0 {
					t.Fatalf("transitivity broken: %s %s %s", a.Place.ID, b.Place.ID, c.Place.ID)
				}
			}
		}
	}
}

func TestFetch_LargeMatchSetOrderedInFull(t *testing.T) {
	rows := make([]directory.PlaceResult, 0, 1500)
	for i := range 1500 {
		rows = append(rows, testPlace(fmt.Sprintf("p%04d", i), fmt.Sprintf("Place %04d", i), "Austin", optional.Of(3.0), noCoords))
	}
	rows[1499].Place.Rating = optional.Of(5.0)

	mc := &mockCandidates{
		candidatesFn: func(_ context.Context, _ filter.Expression, _ int) ([]directory.PlaceResult, error) {
			out := make([]directory.PlaceResult, len(rows))
			copy(out, rows)
			return out, nil
		},
	}
	svc := New(mc, 0)

	n, err := svc.Count(context.Background(), request.Filters{})
	if err != nil || n != 1500 {
		t.Fatalf("Count = %d, %v; want 1500", n, err)
	}
	got, err := svc.Fetch(context.Background(), request.Filters{}, 0, 1)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || got[0].Place.ID != "p1499" {
		t.Errorf("first = %v, want the top-rated p1499", ids(got))
	}
}
