package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/app"
	"github.com/kailas-cloud/provdir/internal/config"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/provdir/internal/logger"
	chiTransport "github.com/kailas-cloud/provdir/internal/transport/chi"
	seeduc "github.com/kailas-cloud/provdir/internal/usecase/seed"
	"github.com/kailas-cloud/provdir/internal/version"
)

const defaultTimeout = 30 * time.Second

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "directoryctl:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "directoryctl",
		Usage:   "Operate the provider directory: create indexes, load data, run searches",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Config environment (reads config/<env>.yaml)",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the whole command",
				Value: defaultTimeout,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the location and place search indexes (idempotent)",
				Action: withRuntime(out, runMigrate),
			},
			{
				Name:  "seed",
				Usage: "Load listings, locations and places from a YAML or JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the seed file",
						Required: true,
					},
				},
				Action: withRuntime(out, runSeed),
			},
			{
				Name:   "search",
				Usage:  "Run a blended search and print the page as JSON",
				Flags:  searchFlags(),
				Action: withRuntime(out, runSearch),
			},
		},
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Substring of name, headline or city"},
		&cli.StringFlag{Name: "state", Usage: "State as abbreviation, name or slug"},
		&cli.StringFlag{Name: "city", Usage: "City substring"},
		&cli.StringSliceFlag{Name: "mode", Usage: "Service mode (in_home, in_center, telehealth, school_based); repeatable"},
		&cli.StringSliceFlag{Name: "insurance", Usage: "Accepted insurance; repeatable"},
		&cli.StringSliceFlag{Name: "language", Usage: "Spoken language; repeatable"},
		&cli.BoolFlag{Name: "accepting", Usage: "Only listings accepting (or, with =false, not accepting) clients"},
		&cli.Float64Flag{Name: "lat", Usage: "Searcher latitude"},
		&cli.Float64Flag{Name: "lng", Usage: "Searcher longitude"},
		&cli.Float64Flag{Name: "radius", Usage: "Searcher radius in miles (informational)"},
		&cli.IntFlag{Name: "page", Usage: "1-based page number", Value: 1},
		&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Page size"},
	}
}

// paramsFromFlags builds search params; unset optional flags stay nil.
func paramsFromFlags(c *cli.Context) request.Params {
	p := request.Params{
		Query:        c.String("query"),
		State:        c.String("state"),
		City:         c.String("city"),
		ServiceModes: c.StringSlice("mode"),
		Insurances:   c.StringSlice("insurance"),
		Languages:    c.StringSlice("language"),
		Page:         c.Int("page"),
		Limit:        c.Int("limit"),
	}
	if c.IsSet("accepting") {
		v := c.Bool("accepting")
		p.AcceptingClients = &v
	}
	if c.IsSet("lat") {
		v := c.Float64("lat")
		p.UserLat = &v
	}
	if c.IsSet("lng") {
		v := c.Float64("lng")
		p.UserLng = &v
	}
	if c.IsSet("radius") {
		v := c.Float64("radius")
		p.RadiusMiles = &v
	}
	return p
}

// runtimeDeps is what every command needs after config and store are up.
type runtimeDeps struct {
	app    *app.App
	logger *zap.Logger
	out    io.Writer
}

func withRuntime(out io.Writer, run func(ctx context.Context, c *cli.Context, d *runtimeDeps) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		env := c.String("env")
		cfg, err := config.Load(env)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
		defer cancel()
		ctx = logpkg.ContextWithLogger(ctx, logger)

		store, err := app.OpenStore(cfg.Database)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("database not ready: %w", err)
		}

		return run(ctx, c, &runtimeDeps{app: app.New(store, &cfg, logger), logger: logger, out: out})
	}
}

func runMigrate(ctx context.Context, _ *cli.Context, d *runtimeDeps) error {
	m, err := d.app.Seed.Migrate(ctx)
	if err != nil {
		return err
	}
	return printJSON(d.out, m)
}

func runSeed(ctx context.Context, c *cli.Context, d *runtimeDeps) error {
	f, err := seeduc.ParseFile(c.String("file"))
	if err != nil {
		return err
	}
	sum, err := d.app.Seed.Load(ctx, f)
	if err != nil {
		return err
	}
	return printJSON(d.out, sum)
}

func runSearch(ctx context.Context, c *cli.Context, d *runtimeDeps) error {
	req := request.New(paramsFromFlags(c), d.app.Limits)
	if req.CoordinatesIgnored() {
		d.logger.Warn("Ignoring --lat/--lng: both must be set and in range")
	}
	for _, a := range req.Adjustments() {
		d.logger.Warn("Search filter adjusted", zap.String("adjustment", a))
	}
	page, err := d.app.Search.Search(ctx, &req)
	if err != nil {
		return err
	}
	return printJSON(d.out, chiTransport.NewSearchResponse(&page))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
