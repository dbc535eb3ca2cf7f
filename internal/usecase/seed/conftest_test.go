package seed

import (
	"context"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
)

type mockListings struct {
	ensureFn func(ctx context.Context) (bool, error)
	upsertFn func(ctx context.Context, l directory.Listing, locs []directory.Location) error

	listings  []directory.Listing
	locations []directory.Location
}

func (m *mockListings) EnsureIndex(ctx context.Context) (bool, error) {
	if m.ensureFn != nil {
		return m.ensureFn(ctx)
	}
	return true, nil
}

func (m *mockListings) Upsert(ctx context.Context, l directory.Listing, locs []directory.Location) error {
	if m.upsertFn != nil {
		if err := m.upsertFn(ctx, l, locs); err != nil {
			return err
		}
	}
	m.listings = append(m.listings, l)
	m.locations = append(m.locations, locs...)
	return nil
}

type mockPlaces struct {
	ensureFn func(ctx context.Context) (bool, error)

	batches [][]directory.Place
}

func (m *mockPlaces) EnsureIndex(ctx context.Context) (bool, error) {
	if m.ensureFn != nil {
		return m.ensureFn(ctx)
	}
	return false, nil
}

func (m *mockPlaces) Upsert(_ context.Context, places []directory.Place) error {
	m.batches = append(m.batches, append([]directory.Place(nil), places...))
	return nil
}

const sampleYAML = `
listings:
  - id: lst-1
    agency_name: Bright Futures ABA
    headline: Center-based care
    plan_tier: pro
    accepting_clients: true
    languages: [English, Spanish]
    delivery: [telehealth]
    google_rating: 4.8
    google_rating_count: 120
    locations:
      - id: loc-1
        city: Newark
        state: New Jersey
        lat: 40.7357
        lng: -74.1724
        service_mode: both
        insurances: [Aetna, Cigna]
        service_radius_miles: 25
        is_primary: true
      - city: Trenton
        state: nj
places:
  - name: Sunrise Autism
    city: Austin
    state: texas
    rating: 4.2
    rating_count: 10
`
