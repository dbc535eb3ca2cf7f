package place

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// CompareByDistance orders nearest first, unknown distance last, then by id.
func CompareByDistance(a, b directory.PlaceResult) int {
	if c := compareKnownFirst(a.DistanceMiles, b.DistanceMiles, false); c != 0 {
		return c
	}
	return cmp.Compare(a.Place.ID, b.Place.ID)
}

// CompareByRating orders highest rating first (unknown last), then by
// case-insensitive name, then by id.
func CompareByRating(a, b directory.PlaceResult) int {
	if c := compareKnownFirst(a.Place.Rating, b.Place.Rating, true); c != 0 {
		return c
	}
	if c := cmp.Compare(strings.ToLower(a.Place.Name), strings.ToLower(b.Place.Name)); c != 0 {
		return c
	}
	return cmp.Compare(a.Place.ID, b.Place.ID)
}

// Rank sorts rows in place: by distance when the searcher's position is
// known, by rating otherwise.
func Rank(rows []directory.PlaceResult, hasSearcher bool) {
	if hasSearcher {
		slices.SortFunc(rows, CompareByDistance)
		return
	}
	slices.SortFunc(rows, CompareByRating)
}

func compareKnownFirst(a, b optional.Value[float64], desc bool) int {
	va, okA := a.Get()
	vb, okB := b.Get()
	switch {
	case okA && okB:
		if desc {
			return cmp.Compare(vb, va)
		}
		return cmp.Compare(va, vb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
