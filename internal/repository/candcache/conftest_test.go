package candcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/db"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

type row struct {
	ID string `json:"id"`
}

type mockLoader struct {
	rows    []row
	err     error
	calls   int
	maxRows int
}

func (m *mockLoader) Candidates(_ context.Context, _ filter.Expression, maxRows int) ([]row, error) {
	m.calls++
	m.maxRows = maxRows
	return m.rows, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCache(t *testing.T, inner *mockLoader, ttl time.Duration) (*Cache[row], *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New[row](inner, ms, "internal", "test:", ttl, nil, zap.NewNop()), ms
}
