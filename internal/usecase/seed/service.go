// Package seed loads listings, locations and directory places into storage.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/logger"
)

// DefaultPlaceChunk is the number of places written per pipeline.
const DefaultPlaceChunk = 500

// Summary counts what a load wrote.
type Summary struct {
	Listings  int `json:"listings"`
	Locations int `json:"locations"`
	Places    int `json:"places"`
}

// Migration reports which indexes were created.
type Migration struct {
	LocationsIndexCreated bool `json:"locations_index_created"`
	PlacesIndexCreated    bool `json:"places_index_created"`
}

// Service creates indexes and writes seed data.
type Service struct {
	listings   ListingWriter
	places     PlaceWriter
	placeChunk int
}

// New creates a seed service.
func New(listings ListingWriter, places PlaceWriter) *Service {
	return &Service{listings: listings, places: places, placeChunk: DefaultPlaceChunk}
}

// Migrate creates both search indexes. Existing indexes are left as is.
func (s *Service) Migrate(ctx context.Context) (Migration, error) {
	var m Migration
	var err error
	if m.LocationsIndexCreated, err = s.listings.EnsureIndex(ctx); err != nil {
		return m, fmt.Errorf("ensure locations index: %w", err)
	}
	if m.PlacesIndexCreated, err = s.places.EnsureIndex(ctx); err != nil {
		return m, fmt.Errorf("ensure places index: %w", err)
	}
	return m, nil
}

type listingBatch struct {
	listing   directory.Listing
	locations []directory.Location
}

// Load validates every record first, then migrates and writes. Nothing is
// written when any record is invalid.
func (s *Service) Load(ctx context.Context, f *File) (Summary, error) {
	batches := make([]listingBatch, 0, len(f.Listings))
	for i := range f.Listings {
		l, locs, err := toListing(&f.Listings[i])
		if err != nil {
			return Summary{}, fmt.Errorf("listing %d: %w", i, err)
		}
		batches = append(batches, listingBatch{listing: l, locations: locs})
	}

	places := make([]directory.Place, 0, len(f.Places))
	for i := range f.Places {
		p, err := toPlace(&f.Places[i])
		if err != nil {
			return Summary{}, fmt.Errorf("place %d: %w", i, err)
		}
		places = append(places, p)
	}

	m, err := s.Migrate(ctx)
	if err != nil {
		return Summary{}, err
	}

	log := logger.FromContext(ctx)
	log.Info("Seeding",
		zap.Int("listings", len(batches)),
		zap.Int("places", len(places)),
		zap.Bool("locations_index_created", m.LocationsIndexCreated),
		zap.Bool("places_index_created", m.PlacesIndexCreated),
	)

	var sum Summary
	for _, b := range batches {
		if err := s.listings.Upsert(ctx, b.listing, b.locations); err != nil {
			return sum, err
		}
		sum.Listings++
		sum.Locations += len(b.locations)
	}

	for start := 0; start < len(places); start += s.placeChunk {
		end := min(start+s.placeChunk, len(places))
		if err := s.places.Upsert(ctx, places[start:end]); err != nil {
			return sum, err
		}
		sum.Places += end - start
	}

	log.Info("Seed complete",
		zap.Int("listings", sum.Listings),
		zap.Int("locations", sum.Locations),
		zap.Int("places", sum.Places),
	)
	return sum, nil
}
