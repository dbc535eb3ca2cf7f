package location

import (
	"context"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

// CandidateLoader loads every location joined with its listing matching a
// pushed-down filter. maxRows > 0 caps the match count; a larger set fails
// with domain.ErrTooManyCandidates.
type CandidateLoader interface {
	Candidates(ctx context.Context, expr filter.Expression, maxRows int) ([]directory.LocationResult, error)
}

// LocationCounter counts locations per listing id.
type LocationCounter interface {
	LocationCounts(ctx context.Context, listingIDs []string) (map[string]int, error)
}
