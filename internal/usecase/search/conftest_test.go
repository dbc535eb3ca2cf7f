package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
)

// fakeSource is a slice-backed Paginator with optional injected failures.
type fakeSource[T any] struct {
	rows     []T
	countErr error
	fetchErr error

	fetches atomic.Int32
	lastOff atomic.Int32
	lastLim atomic.Int32
}

func (f *fakeSource[T]) Count(_ context.Context, _ request.Filters) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.rows), nil
}

func (f *fakeSource[T]) Fetch(_ context.Context, _ request.Filters, offset, limit int) ([]T, error) {
	f.fetches.Add(1)
	f.lastOff.Store(int32(offset))
	f.lastLim.Store(int32(limit))
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return directory.Window(f.rows, offset, limit), nil
}

func locations(n int) []directory.LocationResult {
	out := make([]directory.LocationResult, n)
	for i := range out {
		out[i] = directory.LocationResult{Location: directory.Location{ID: fmt.Sprintf("loc-%02d", i)}}
	}
	return out
}

func places(n int) []directory.PlaceResult {
	out := make([]directory.PlaceResult, n)
	for i := range out {
		out[i] = directory.PlaceResult{Place: directory.Place{ID: fmt.Sprintf("place-%02d", i)}}
	}
	return out
}

func newRequest(t *testing.T, page, limit int) *request.Request {
	t.Helper()
	req := request.New(request.Params{Page: page, Limit: limit}, request.DefaultLimits())
	return &req
}

func resultIDs(results []directory.Result) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ResultID()
	}
	return ids
}
