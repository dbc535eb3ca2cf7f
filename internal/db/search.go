package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

// ListQuery is the input for a filtered, windowed FT.SEARCH.
type ListQuery struct {
	IndexName    string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
}

// CountQuery is the input for a filtered count (FT.SEARCH LIMIT 0 0).
type CountQuery struct {
	IndexName string
	Filters   filter.Expression
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// Lister is the single FT.SEARCH window read ListAll pages over.
type Lister interface {
	SearchList(ctx context.Context, q *ListQuery) (*SearchResult, error)
}

// ListAll reads every document matching q in successive windows of batch
// rows. q's Offset and Limit are ignored. maxRows > 0 fails with
// ErrTooManyResults once the reported total exceeds it. A key seen in an
// earlier window is skipped, since writes between windows can shift offsets.
func ListAll(ctx context.Context, s Lister, q *ListQuery, batch, maxRows int) ([]SearchEntry, error) {
	if batch <= 0 {
		return nil, errors.New("batch size must be positive")
	}

	window := *q
	window.Offset = 0
	window.Limit = batch

	var out []SearchEntry
	seen := make(map[string]struct{})
	for {
		sr, err := s.SearchList(ctx, &window)
		if err != nil {
			return nil, err
		}
		if maxRows > 0 && sr.Total > maxRows {
			return nil, fmt.Errorf("%w: %d matches, cap %d", ErrTooManyResults, sr.Total, maxRows)
		}
		if out == nil {
			out = make([]SearchEntry, 0, sr.Total)
		}
		for _, e := range sr.Entries {
			if _, dup := seen[e.Key]; dup {
				continue
			}
			seen[e.Key] = struct{}{}
			out = append(out, e)
		}

		window.Offset += batch
		if len(sr.Entries) == 0 || window.Offset >= sr.Total {
			return out, nil
		}
	}
}
