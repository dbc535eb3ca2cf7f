// Package candcache caches candidate sets in a key-value store so the
// count and fetch phases of one search (and repeated page requests) share a
// single index read.
package candcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/db"
	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
)

// Loader loads every candidate matching expr; maxRows > 0 caps the match count.
type Loader[T any] interface {
	Candidates(ctx context.Context, expr filter.Expression, maxRows int) ([]T, error)
}

// store is the consumer interface for the candidate cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type entry[T any] struct {
	Rows []T `json:"rows"`
}

// Cache is a read-through decorator over a Loader.
type Cache[T any] struct {
	inner      Loader[T]
	store      store
	source     string
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. A non-positive ttl disables caching.
// cacheTotal is a counter vec with labels "source" and "result" ("hit"/"miss"), passed explicitly.
func New[T any](
	inner Loader[T],
	s store,
	source, keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache[T] {
	return &Cache[T]{
		inner:      inner,
		store:      s,
		source:     source,
		keyPrefix:  keyPrefix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Candidates returns a cached candidate set or loads it from the inner loader.
// Cache failures are logged and never fail the read; load errors are not cached.
func (c *Cache[T]) Candidates(ctx context.Context, expr filter.Expression, maxRows int) ([]T, error) {
	if c.ttl <= 0 {
		return c.inner.Candidates(ctx, expr, maxRows)
	}

	key := c.cacheKey(expr, maxRows)
	if e, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return e.Rows, nil
	}

	c.incCache("miss")

	rows, err := c.inner.Candidates(ctx, expr, maxRows)
	if err != nil {
		return nil, fmt.Errorf("load %s candidates: %w", c.source, err)
	}

	c.putToCache(ctx, key, entry[T]{Rows: rows})
	return rows, nil
}

func (c *Cache[T]) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(c.source, result).Inc()
	}
}

type keyCondition struct {
	Key    string   `json:"k"`
	Values []string `json:"v"`
}

type keySpec struct {
	Must    []keyCondition `json:"must"`
	Should  []keyCondition `json:"should"`
	MaxRows int            `json:"max"`
}

func keyConditions(conds []filter.Condition) []keyCondition {
	out := make([]keyCondition, len(conds))
	for i, cond := range conds {
		out[i] = keyCondition{Key: cond.Key(), Values: cond.Values()}
	}
	return out
}

// cacheKey hashes a structured encoding of expr, so values containing
// separators cannot collide with multi-value conditions.
func (c *Cache[T]) cacheKey(expr filter.Expression, maxRows int) string {
	// Strings and ints only; Marshal cannot fail.
	spec, _ := json.Marshal(keySpec{
		Must:    keyConditions(expr.Must()),
		Should:  keyConditions(expr.Should()),
		MaxRows: maxRows,
	})
	h := sha256.Sum256(spec)
	return c.keyPrefix + "cand_cache:" + c.source + ":" + hex.EncodeToString(h[:])
}

func (c *Cache[T]) getFromCache(ctx context.Context, key string) (entry[T], bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached candidates", zap.String("key", key), zap.Error(err))
		}
		return entry[T]{}, false
	}
	if len(data) == 0 {
		return entry[T]{}, false
	}

	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Failed to parse cached candidates", zap.String("key", key), zap.Error(err))
		return entry[T]{}, false
	}
	return e, true
}

func (c *Cache[T]) putToCache(ctx context.Context, key string, e entry[T]) {
	data, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("Failed to encode candidates", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache candidates", zap.String("key", key), zap.Error(err))
	}
}
