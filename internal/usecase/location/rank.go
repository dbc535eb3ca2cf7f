package location

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// Compare orders internal results: featured first, then paid tiers, then
// nearest (unknown distance last). Location id breaks remaining ties so the
// order is total.
func Compare(a, b directory.LocationResult) int {
	if c := compareFlag(a.Location.IsFeatured, b.Location.IsFeatured); c != 0 {
		return c
	}
	if c := compareFlag(a.Listing.PlanTier.IsPaid(), b.Listing.PlanTier.IsPaid()); c != 0 {
		return c
	}
	if c := CompareDistance(a.DistanceMiles, b.DistanceMiles); c != 0 {
		return c
	}
	return cmp.Compare(a.Location.ID, b.Location.ID)
}

// CompareDistance orders known distances ascending, unknown after all known.
func CompareDistance(a, b optional.Value[float64]) int {
	distA, okA := a.Get()
	distB, okB := b.Get()
	switch {
	case okA && okB:
		return cmp.Compare(distA, distB)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// Rank sorts rows in place.
func Rank(rows []directory.LocationResult) {
	slices.SortFunc(rows, Compare)
}

// compareFlag puts true before false.
func compareFlag(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}
