package search

import (
	"context"

	"github.com/kailas-cloud/provdir/internal/domain/search/request"
)

// Paginator is one independently paginated result source.
// Count and Fetch must observe the same filtered, ordered set.
type Paginator[T any] interface {
	Count(ctx context.Context, f request.Filters) (int, error)
	Fetch(ctx context.Context, f request.Filters, offset, limit int) ([]T, error)
}
