package place

import (
	"context"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

// CandidateLoader loads every directory place matching a
// pushed-down filter. maxRows > 0 caps the match count; a larger set fails
// with domain.ErrTooManyCandidates.
type CandidateLoader interface {
	Candidates(ctx context.Context, expr filter.Expression, maxRows int) ([]directory.PlaceResult, error)
}
