package db

import (
	"context"
	"time"
)

// Store is the database facade used by the composition root. Repositories
// depend on the narrow sub-interfaces they need.
type Store interface {
	Pinger
	HashStore
	CacheStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem is one hash to write.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore reads and writes record hashes in pipelined batches.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	// HGetAllMulti returns one map per key, in key order. A missing key
	// yields an empty map.
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// CacheStore holds expiring opaque values.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IndexManager creates and probes FT indexes.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher lists and counts documents over FT indexes.
type Searcher interface {
	SearchList(ctx context.Context, q *ListQuery) (*SearchResult, error)
	SearchCountMulti(ctx context.Context, qs []CountQuery) ([]int, error)
}
