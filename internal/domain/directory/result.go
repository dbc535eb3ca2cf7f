package directory

import (
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// Result is one ranked search row. It is implemented only by
// LocationResult and PlaceResult; use a type switch to read variant fields.
type Result interface {
	ResultID() string
	// IsPrePopulated is true for unverified directory entries.
	IsPrePopulated() bool
	sealed()
}

// LocationResult is a verified location joined with its listing.
type LocationResult struct {
	Location            Location
	Listing             Listing
	DistanceMiles       optional.Value[float64]
	WithinServiceRadius bool
	OtherLocationsCount int
}

// ResultID returns the location id.
func (r LocationResult) ResultID() string { return r.Location.ID }

// IsPrePopulated is always false for verified locations.
func (LocationResult) IsPrePopulated() bool { return false }

func (LocationResult) sealed() {}

// PlaceResult is an unverified directory entry.
type PlaceResult struct {
	Place         Place
	DistanceMiles optional.Value[float64]
}

// ResultID returns the place id.
func (r PlaceResult) ResultID() string { return r.Place.ID }

// IsPrePopulated is always true for directory entries.
func (PlaceResult) IsPrePopulated() bool { return true }

func (PlaceResult) sealed() {}

// Page is one blended result page.
type Page struct {
	Results       []Result
	InternalTotal int
	ExternalTotal int
	Total         int
	Page          int
	TotalPages    int
	HasMore       bool
}

// Window returns rows[offset:offset+limit], clamped to the slice bounds.
func Window[T any](rows []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(rows) {
		return nil
	}
	end := min(offset+limit, len(rows))
	return rows[offset:end]
}
