package seed

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/kailas-cloud/provdir/internal/domain"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/mode"
	"github.com/kailas-cloud/provdir/internal/domain/state"
)

const maxRating = 5

func toListing(rec *ListingRecord) (directory.Listing, []directory.Location, error) {
	name := strings.TrimSpace(rec.AgencyName)
	if name == "" {
		return directory.Listing{}, nil, invalid("agency_name is required")
	}
	tier, err := directory.ParsePlanTier(strings.TrimSpace(rec.PlanTier))
	if err != nil {
		return directory.Listing{}, nil, invalid(err.Error())
	}
	for _, d := range rec.Delivery {
		if !mode.Mode(d).IsDelivery() {
			return directory.Listing{}, nil, invalid(fmt.Sprintf("unsupported delivery %q", d))
		}
	}
	rating, err := ratingValue(rec.GoogleRating, rec.GoogleRatingCount)
	if err != nil {
		return directory.Listing{}, nil, err
	}

	listing := directory.Listing{
		ID:                idOrNew(rec.ID),
		Slug:              slugOr(rec.Slug, name),
		AgencyName:        name,
		Headline:          strings.TrimSpace(rec.Headline),
		Summary:           strings.TrimSpace(rec.Summary),
		LogoURL:           strings.TrimSpace(rec.LogoURL),
		PlanTier:          tier,
		AcceptingClients:  rec.AcceptingClients,
		Languages:         rec.Languages,
		Delivery:          rec.Delivery,
		GoogleRating:      rating,
		GoogleRatingCount: optional.FromPtr(rec.GoogleRatingCount),
	}

	locations := make([]directory.Location, 0, len(rec.Locations))
	for i := range rec.Locations {
		loc, err := toLocation(&rec.Locations[i], listing.ID)
		if err != nil {
			return directory.Listing{}, nil, fmt.Errorf("location %d: %w", i, err)
		}
		locations = append(locations, loc)
	}
	return listing, locations, nil
}

func toLocation(rec *LocationRecord, listingID string) (directory.Location, error) {
	st, err := stateValue(rec.State)
	if err != nil {
		return directory.Location{}, err
	}
	coords, err := pointValue(rec.Lat, rec.Lng)
	if err != nil {
		return directory.Location{}, err
	}

	sm := directory.CenterBased
	if s := strings.TrimSpace(rec.ServiceMode); s != "" {
		if sm, err = directory.ParseServiceMode(s); err != nil {
			return directory.Location{}, invalid(err.Error())
		}
	}
	if rec.ServiceRadiusMiles < 0 {
		return directory.Location{}, invalid("service_radius_miles must be non-negative")
	}

	return directory.Location{
		ID:                 idOrNew(rec.ID),
		ListingID:          listingID,
		Street:             strings.TrimSpace(rec.Street),
		City:               strings.TrimSpace(rec.City),
		State:              st,
		PostalCode:         strings.TrimSpace(rec.PostalCode),
		Coordinates:        coords,
		ServiceMode:        sm,
		Insurances:         rec.Insurances,
		ServiceRadiusMiles: rec.ServiceRadiusMiles,
		IsPrimary:          rec.IsPrimary,
		IsFeatured:         rec.IsFeatured,
	}, nil
}

func toPlace(rec *PlaceRecord) (directory.Place, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return directory.Place{}, invalid("name is required")
	}
	st, err := stateValue(rec.State)
	if err != nil {
		return directory.Place{}, err
	}
	coords, err := pointValue(rec.Lat, rec.Lng)
	if err != nil {
		return directory.Place{}, err
	}
	rating, err := ratingValue(rec.Rating, rec.RatingCount)
	if err != nil {
		return directory.Place{}, err
	}

	return directory.Place{
		ID:          idOrNew(rec.ID),
		Slug:        slugOr(rec.Slug, name),
		Name:        name,
		Street:      strings.TrimSpace(rec.Street),
		City:        strings.TrimSpace(rec.City),
		State:       st,
		PostalCode:  strings.TrimSpace(rec.PostalCode),
		Coordinates: coords,
		Phone:       strings.TrimSpace(rec.Phone),
		Website:     strings.TrimSpace(rec.Website),
		Rating:      rating,
		RatingCount: optional.FromPtr(rec.RatingCount),
	}, nil
}

// stateValue stores recognized states as their abbreviation and keeps
// anything else verbatim.
func stateValue(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("state is required")
	}
	if st, ok := state.Normalize(raw); ok {
		return st.Abbreviation, nil
	}
	return raw, nil
}

func pointValue(lat, lng *float64) (optional.Value[geo.Point], error) {
	switch {
	case lat == nil && lng == nil:
		return optional.Empty[geo.Point](), nil
	case lat == nil || lng == nil:
		return optional.Value[geo.Point]{}, invalid("lat and lng must be set together")
	}
	p, ok := geo.NewPoint(*lat, *lng)
	if !ok {
		return optional.Value[geo.Point]{}, invalid(fmt.Sprintf("coordinates out of range: %v,%v", *lat, *lng))
	}
	return optional.Of(p), nil
}

func ratingValue(rating *float64, count *int) (optional.Value[float64], error) {
	if rating != nil && (*rating < 0 || *rating > maxRating) {
		return optional.Value[float64]{}, invalid(fmt.Sprintf("rating %v outside [0,%d]", *rating, maxRating))
	}
	if count != nil && *count < 0 {
		return optional.Value[float64]{}, invalid("rating count must be non-negative")
	}
	return optional.FromPtr(rating), nil
}

func idOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

// slugOr returns slug, or one derived from name when slug is blank.
func slugOr(slug, name string) string {
	if slug = strings.TrimSpace(slug); slug != "" {
		return slug
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRecord, msg)
}
