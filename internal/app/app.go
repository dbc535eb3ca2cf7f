// Package app wires storage, repositories and use cases for the binaries.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/config"
	"github.com/kailas-cloud/provdir/internal/db"
	dbRedis "github.com/kailas-cloud/provdir/internal/db/redis"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	"github.com/kailas-cloud/provdir/internal/metrics"
	"github.com/kailas-cloud/provdir/internal/repository/candcache"
	locationrepo "github.com/kailas-cloud/provdir/internal/repository/location"
	placerepo "github.com/kailas-cloud/provdir/internal/repository/place"
	healthuc "github.com/kailas-cloud/provdir/internal/usecase/health"
	locationuc "github.com/kailas-cloud/provdir/internal/usecase/location"
	placeuc "github.com/kailas-cloud/provdir/internal/usecase/place"
	searchuc "github.com/kailas-cloud/provdir/internal/usecase/search"
	seeduc "github.com/kailas-cloud/provdir/internal/usecase/seed"
)

// App holds the wired services.
type App struct {
	Search *searchuc.Service
	Health *healthuc.Service
	Seed   *seeduc.Service
	Limits request.Limits
}

// OpenStore connects to the configured database. Redis and Valkey share the
// wire protocol, so both drivers use the rueidis store.
func OpenStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "redis", "valkey":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// New builds the composition root over store.
func New(store db.Store, cfg *config.Config, logger *zap.Logger) *App {
	prefix := cfg.Storage.KeyPrefix
	ttl := time.Duration(cfg.Search.CacheTTLSec) * time.Second

	locRepo := locationrepo.New(store, prefix)
	placeRepo := placerepo.New(store, prefix)

	// Candidate sets are cached so Count and Fetch of one search see the same rows.
	locCandidates := candcache.New[directory.LocationResult](
		locRepo, store, searchuc.SourceInternal, prefix, ttl, metrics.CandidateCacheTotal, logger,
	)
	placeCandidates := candcache.New[directory.PlaceResult](
		placeRepo, store, searchuc.SourceExternal, prefix, ttl, metrics.CandidateCacheTotal, logger,
	)

	locSvc := locationuc.New(locCandidates, locRepo, cfg.Search.MaxCandidates)
	placeSvc := placeuc.New(placeCandidates, cfg.Search.MaxCandidates)

	return &App{
		Search: searchuc.New(locSvc, placeSvc),
		Health: healthuc.New(store, map[string]healthuc.IndexChecker{
			"locations_index": locRepo,
			"places_index":    placeRepo,
		}),
		Seed: seeduc.New(locRepo, placeRepo),
		Limits: request.Limits{
			DefaultLimit: cfg.Search.DefaultPageSize,
			MaxLimit:     cfg.Search.MaxPageSize,
		},
	}
}
