package location

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/predicate"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	"github.com/kailas-cloud/provdir/internal/logger"
)

// Service queries and ranks verified locations. It is the internal source of
// the blended search: Count and Fetch see the same filtered, ranked set.
type Service struct {
	candidates    CandidateLoader
	counter       LocationCounter
	maxCandidates int
}

// New creates a location query service. maxCandidates <= 0 loads every
// match; a positive cap fails searches that match more rows.
func New(candidates CandidateLoader, counter LocationCounter, maxCandidates int) *Service {
	return &Service{candidates: candidates, counter: counter, maxCandidates: maxCandidates}
}

// Count returns the number of locations matching f.
func (s *Service) Count(ctx context.Context, f request.Filters) (int, error) {
	rows, err := s.matching(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Fetch returns the ranked window [offset, offset+limit) of matching locations,
// annotated with distance, coverage and the listing's other-location count.
func (s *Service) Fetch(
	ctx context.Context, f request.Filters, offset, limit int,
) ([]directory.LocationResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.matching(ctx, f)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		annotate(&rows[i], f.Searcher)
	}
	Rank(rows)

	page := directory.Window(rows, offset, limit)
	if len(page) == 0 {
		return nil, nil
	}

	s.attachOtherLocations(ctx, page)
	return page, nil
}

// matching loads candidates and applies the in-memory filters.
func (s *Service) matching(ctx context.Context, f request.Filters) ([]directory.LocationResult, error) {
	expr, err := predicate.Locations(f)
	if err != nil {
		return nil, fmt.Errorf("build location predicates: %w", err)
	}

	rows, err := s.candidates.Candidates(ctx, expr, s.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("load location candidates: %w", err)
	}

	city := strings.ToLower(f.City)
	query := strings.ToLower(f.Query)
	out := make([]directory.LocationResult, 0, len(rows))
	for _, r := range rows {
		if city != "" && !strings.Contains(strings.ToLower(r.Location.City), city) {
			continue
		}
		if query != "" && !matchesQuery(&r.Listing, query) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// matchesQuery checks the agency name, headline and summary.
func matchesQuery(l *directory.Listing, query string) bool {
	return strings.Contains(strings.ToLower(l.AgencyName), query) ||
		strings.Contains(strings.ToLower(l.Headline), query) ||
		strings.Contains(strings.ToLower(l.Summary), query)
}

func annotate(r *directory.LocationResult, searcher optional.Value[geo.Point]) {
	r.DistanceMiles = geo.DistanceBetween(searcher, r.Location.Coordinates)
	r.WithinServiceRadius = WithinServiceRadius(r.Location, r.DistanceMiles)
}

// WithinServiceRadius reports whether a location covers the searcher.
// Center-based sites are always covered; otherwise an unknown distance is
// given the benefit of the doubt.
func WithinServiceRadius(loc directory.Location, distance optional.Value[float64]) bool {
	if loc.ServiceMode == directory.CenterBased {
		return true
	}
	d, ok := distance.Get()
	if !ok {
		return true
	}
	return d <= loc.ServiceRadiusMiles
}

// attachOtherLocations sets OtherLocationsCount for the page. A failed count
// leaves the page usable with zero counts.
func (s *Service) attachOtherLocations(ctx context.Context, page []directory.LocationResult) {
	ids := make([]string, 0, len(page))
	for i := range page {
		ids = append(ids, page[i].Location.ListingID)
	}

	counts, err := s.counter.LocationCounts(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to count listing locations", zap.Error(err))
		return
	}
	for i := range page {
		page[i].OtherLocationsCount = max(counts[page[i].Location.ListingID]-1, 0)
	}
}
