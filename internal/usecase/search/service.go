package search

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/provdir/internal/domain"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	"github.com/kailas-cloud/provdir/internal/logger"
	"github.com/kailas-cloud/provdir/internal/metrics"
)

// Source and stage names used in logs and metrics.
const (
	SourceInternal = "internal"
	SourceExternal = "external"
	stageCount     = "count"
	stageFetch     = "fetch"
)

// Service blends the verified registry and the unverified directory into one
// paginated result list, verified rows first.
type Service struct {
	internal Paginator[directory.LocationResult]
	external Paginator[directory.PlaceResult]
}

// New creates a blended search service.
func New(internal Paginator[directory.LocationResult], external Paginator[directory.PlaceResult]) *Service {
	return &Service{internal: internal, external: external}
}

// Search returns one blended page. A source that fails is logged and treated
// as empty; only context cancellation fails the call.
func (s *Service) Search(ctx context.Context, req *request.Request) (directory.Page, error) {
	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	log := logger.FromContext(ctx)
	if req.CoordinatesIgnored() {
		log.Debug("Ignoring unusable searcher coordinates")
	}
	for _, a := range req.Adjustments() {
		log.Debug("Search filter adjusted", zap.String("adjustment", a))
	}

	f := req.Filters()
	page, limit := req.Page(), req.Limit()
	degraded := false

	internalTotal, externalTotal := s.countBoth(ctx, f, &degraded)
	if err := ctx.Err(); err != nil {
		return directory.Page{}, err
	}

	plan := PlanPage(page, limit, internalTotal)
	w := s.fetchBoth(ctx, f, plan, internalTotal, externalTotal)
	if err := ctx.Err(); err != nil {
		return directory.Page{}, err
	}
	internalRows, externalRows := w.internalRows, w.externalRows
	internalErr, externalErr := w.internalErr, w.externalErr

	if internalErr != nil {
		s.sourceFailed(ctx, SourceInternal, stageFetch, internalErr)
		degraded = true
		internalTotal, internalRows = 0, nil

		plan = PlanPage(page, limit, 0)
		if externalErr == nil {
			externalRows, externalErr = s.fetchExternal(ctx, f, plan, externalTotal)
		}
	}
	if externalErr != nil {
		s.sourceFailed(ctx, SourceExternal, stageFetch, externalErr)
		degraded = true
		externalTotal, externalRows = 0, nil
	}

	results := make([]directory.Result, 0, len(internalRows)+len(externalRows))
	for _, r := range internalRows {
		results = append(results, r)
	}
	for _, r := range externalRows {
		results = append(results, r)
	}

	metrics.SourceRows.WithLabelValues(SourceInternal).Observe(float64(len(internalRows)))
	metrics.SourceRows.WithLabelValues(SourceExternal).Observe(float64(len(externalRows)))
	outcome := "ok"
	if degraded {
		outcome = "degraded"
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()

	total := internalTotal + externalTotal
	totalPages := TotalPages(total, limit)

	log.Debug("Blended search",
		zap.Int("page", page),
		zap.Int("limit", limit),
		zap.Int("internal_total", internalTotal),
		zap.Int("external_total", externalTotal),
		zap.Int("internal_rows", len(internalRows)),
		zap.Int("external_rows", len(externalRows)),
		zap.Bool("degraded", degraded),
	)

	return directory.Page{
		Results:       results,
		InternalTotal: internalTotal,
		ExternalTotal: externalTotal,
		Total:         total,
		Page:          page,
		TotalPages:    totalPages,
		HasMore:       page < totalPages,
	}, nil
}

// countBoth counts the sources concurrently. A failed count is zero.
func (s *Service) countBoth(ctx context.Context, f request.Filters, degraded *bool) (int, int) {
	var internalTotal, externalTotal int
	var internalErr, externalErr error

	var g errgroup.Group
	g.Go(func() error {
		internalTotal, internalErr = s.internal.Count(ctx, f)
		return nil
	})
	g.Go(func() error {
		externalTotal, externalErr = s.external.Count(ctx, f)
		return nil
	})
	_ = g.Wait()

	if internalErr != nil {
		s.sourceFailed(ctx, SourceInternal, stageCount, internalErr)
		*degraded = true
		internalTotal = 0
	}
	if externalErr != nil {
		s.sourceFailed(ctx, SourceExternal, stageCount, externalErr)
		*degraded = true
		externalTotal = 0
	}
	return internalTotal, externalTotal
}

// windows holds both fetched windows and their per-source errors.
type windows struct {
	internalRows []directory.LocationResult
	externalRows []directory.PlaceResult
	internalErr  error
	externalErr  error
}

// fetchBoth reads both windows of plan concurrently, skipping empty ones.
func (s *Service) fetchBoth(
	ctx context.Context, f request.Filters, plan Plan, internalTotal, externalTotal int,
) windows {
	var w windows

	var g errgroup.Group
	if plan.InternalLimit > 0 && internalTotal > 0 {
		g.Go(func() error {
			w.internalRows, w.internalErr = s.internal.Fetch(ctx, f, plan.InternalOffset, plan.InternalLimit)
			return nil
		})
	}
	g.Go(func() error {
		w.externalRows, w.externalErr = s.fetchExternal(ctx, f, plan, externalTotal)
		return nil
	})
	_ = g.Wait()

	return w
}

func (s *Service) fetchExternal(
	ctx context.Context, f request.Filters, plan Plan, externalTotal int,
) ([]directory.PlaceResult, error) {
	if !plan.QueryExternal || plan.ExternalLimit <= 0 || plan.ExternalOffset >= externalTotal {
		return nil, nil
	}
	return s.external.Fetch(ctx, f, plan.ExternalOffset, plan.ExternalLimit)
}

func (s *Service) sourceFailed(ctx context.Context, source, stage string, err error) {
	metrics.SourceErrorsTotal.WithLabelValues(source, stage).Inc()
	logger.FromContext(ctx).Warn("Search source unavailable, treating as empty",
		zap.String("source", source),
		zap.String("stage", stage),
		zap.Error(domain.NewSourceError(source, stage, err)),
	)
}
