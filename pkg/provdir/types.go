package provdir

import (
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	seeduc "github.com/kailas-cloud/provdir/internal/usecase/seed"
)

// SearchParams is raw search input. Nil pointers mean "not given";
// page and limit below 1 fall back to 1 and the default page size.
type SearchParams = request.Params

// Page is one blended result page.
type Page = directory.Page

// Result is one row of a Page: a LocationResult or a PlaceResult.
type Result = directory.Result

// LocationResult is a verified location joined with its listing.
type LocationResult = directory.LocationResult

// PlaceResult is an unverified directory entry.
type PlaceResult = directory.PlaceResult

// Listing, Location and Place are the stored records.
type (
	Listing  = directory.Listing
	Location = directory.Location
	Place    = directory.Place
)

// SeedFile is a seed document; see Load.
type SeedFile = seeduc.File

// Seed record types.
type (
	ListingRecord  = seeduc.ListingRecord
	LocationRecord = seeduc.LocationRecord
	PlaceRecord    = seeduc.PlaceRecord
)

// LoadSummary counts what a load wrote.
type LoadSummary = seeduc.Summary

// Migration reports which indexes were created.
type Migration = seeduc.Migration
