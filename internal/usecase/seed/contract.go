package seed

import (
	"context"

	"github.com/kailas-cloud/provdir/internal/domain/directory"
)

// ListingWriter stores listings with their locations.
type ListingWriter interface {
	EnsureIndex(ctx context.Context) (bool, error)
	Upsert(ctx context.Context, listing directory.Listing, locations []directory.Location) error
}

// PlaceWriter stores directory places.
type PlaceWriter interface {
	EnsureIndex(ctx context.Context) (bool, error)
	Upsert(ctx context.Context, places []directory.Place) error
}
