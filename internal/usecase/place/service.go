package place

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/search/predicate"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
)

// Service queries and orders unverified directory places. Only the state,
// city and free-text filters apply to places.
type Service struct {
	candidates    CandidateLoader
	maxCandidates int
}

// New creates a place query service. maxCandidates <= 0 loads every match.
func New(candidates CandidateLoader, maxCandidates int) *Service {
	return &Service{candidates: candidates, maxCandidates: maxCandidates}
}

// Count returns the number of places matching f.
func (s *Service) Count(ctx context.Context, f request.Filters) (int, error) {
	rows, err := s.matching(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Fetch returns the ordered window [offset, offset+limit) of matching places.
func (s *Service) Fetch(
	ctx context.Context, f request.Filters, offset, limit int,
) ([]directory.PlaceResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.matching(ctx, f)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].DistanceMiles = geo.DistanceBetween(f.Searcher, rows[i].Place.Coordinates)
	}
	Rank(rows, f.Searcher.IsSet())

	return directory.Window(rows, offset, limit), nil
}

func (s *Service) matching(ctx context.Context, f request.Filters) ([]directory.PlaceResult, error) {
	expr, err := predicate.Places(f)
	if err != nil {
		return nil, fmt.Errorf("build place predicates: %w", err)
	}

	rows, err := s.candidates.Candidates(ctx, expr, s.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("load place candidates: %w", err)
	}

	city := strings.ToLower(f.City)
	query := strings.ToLower(f.Query)
	out := make([]directory.PlaceResult, 0, len(rows))
	for _, r := range rows {
		placeCity := strings.ToLower(r.Place.City)
		if city != "" && !strings.Contains(placeCity, city) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Place.Name), query) &&
			!strings.Contains(placeCity, query) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
