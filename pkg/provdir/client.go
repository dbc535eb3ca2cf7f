package provdir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/app"
	"github.com/kailas-cloud/provdir/internal/config"
	"github.com/kailas-cloud/provdir/internal/db"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	seeduc "github.com/kailas-cloud/provdir/internal/usecase/seed"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, swapped for fakes in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (directory.Page, error)
}

type seedUseCase interface {
	Migrate(ctx context.Context) (seeduc.Migration, error)
	Load(ctx context.Context, f *seeduc.File) (seeduc.Summary, error)
}

// Client is the provdir SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	seedSvc   seedUseCase
	healthSvc healthUseCase
	limits    request.Limits
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("provdir: database address required (use WithRedis or WithValkey)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := app.OpenStore(config.DatabaseConfig{
		Driver:   cfg.driver,
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("provdir: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("provdir: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

// serviceConfig maps SDK options onto the service configuration,
// filling the same defaults the server uses.
func serviceConfig(cfg *clientConfig) config.Config {
	c := config.Config{
		Search: config.SearchConfig{
			DefaultPageSize: cfg.defaultPageSize,
			MaxPageSize:     cfg.maxPageSize,
			MaxCandidates:   cfg.maxCandidates,
			CacheTTLSec:     int(cfg.cacheTTL / time.Second),
		},
		Storage: config.StorageConfig{KeyPrefix: cfg.keyPrefix},
	}
	c.ApplyDefaults()
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		c.Search.DefaultPageSize = c.Search.MaxPageSize
	}
	return c
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	svcCfg := serviceConfig(cfg)
	a := app.New(store, &svcCfg, zap.NewNop())
	return &Client{
		store:     store,
		searchSvc: a.Search,
		seedSvc:   a.Seed,
		healthSvc: a.Health,
		limits:    a.Limits,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns one blended page. Unknown service modes are dropped and an
// over-long query or filter list is truncated rather than rejected.
func (c *Client) Search(ctx context.Context, p SearchParams) (page Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req := request.New(p, c.limits)
	return c.searchSvc.Search(ctx, &req)
}

// Migrate creates the search indexes. Existing indexes are left as is.
func (c *Client) Migrate(ctx context.Context) (m Migration, err error) {
	start := time.Now()
	defer func() { c.obs.observe("migrate", start, err) }()

	return c.seedSvc.Migrate(ctx)
}

// Load reads a YAML or JSON seed document and writes it. Nothing is written
// when a record is invalid; such errors wrap ErrInvalidRecord.
func (c *Client) Load(ctx context.Context, r io.Reader) (sum LoadSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	f, err := seeduc.Parse(r)
	if err != nil {
		return LoadSummary{}, err
	}
	return c.seedSvc.Load(ctx, f)
}

// LoadFile is Load for a file path.
func (c *Client) LoadFile(ctx context.Context, path string) (sum LoadSummary, err error) {
	start := time.Now()
	defer func() { c.obs.observe("load", start, err) }()

	f, err := seeduc.ParseFile(path)
	if err != nil {
		return LoadSummary{}, err
	}
	return c.seedSvc.Load(ctx, f)
}
