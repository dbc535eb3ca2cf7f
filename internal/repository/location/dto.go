package location

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/provdir/internal/domain"
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// Hash field names. Location hashes also carry listing-level filter fields
// so one FT.SEARCH can apply every predicate.
const (
	fieldID                 = "id"
	fieldListingID          = "listing_id"
	fieldSlug               = "slug"
	fieldAgencyName         = "agency_name"
	fieldHeadline           = "headline"
	fieldSummary            = "summary"
	fieldLogoURL            = "logo_url"
	fieldPlanTier           = "plan_tier"
	fieldAcceptingClients   = "accepting_clients"
	fieldLanguages          = "languages"
	fieldDelivery           = "delivery"
	fieldGoogleRating       = "google_rating"
	fieldGoogleRatingCount  = "google_rating_count"
	fieldStreet             = "street"
	fieldCity               = "city"
	fieldState              = "state"
	fieldPostalCode         = "postal_code"
	fieldLat                = "lat"
	fieldLng                = "lng"
	fieldServiceMode        = "service_mode"
	fieldInsurances         = "insurances"
	fieldServiceRadiusMiles = "service_radius_miles"
	fieldIsPrimary          = "is_primary"
	fieldIsFeatured         = "is_featured"
)

const tagSeparator = ","

func buildListingFields(l *directory.Listing) map[string]string {
	m := map[string]string{
		fieldID:               l.ID,
		fieldSlug:             l.Slug,
		fieldAgencyName:       l.AgencyName,
		fieldHeadline:         l.Headline,
		fieldSummary:          l.Summary,
		fieldLogoURL:          l.LogoURL,
		fieldPlanTier:         string(l.PlanTier),
		fieldAcceptingClients: strconv.FormatBool(l.AcceptingClients),
		fieldLanguages:        joinTags(l.Languages),
		fieldDelivery:         joinTags(l.Delivery),
	}
	if v, ok := l.GoogleRating.Get(); ok {
		m[fieldGoogleRating] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if v, ok := l.GoogleRatingCount.Get(); ok {
		m[fieldGoogleRatingCount] = strconv.Itoa(v)
	}
	return m
}

// buildLocationFields denormalizes the listing's filter fields onto the location.
func buildLocationFields(loc *directory.Location, l *directory.Listing) map[string]string {
	m := map[string]string{
		fieldID:                 loc.ID,
		fieldListingID:          loc.ListingID,
		fieldStreet:             loc.Street,
		fieldCity:               loc.City,
		fieldState:              loc.State,
		fieldPostalCode:         loc.PostalCode,
		fieldServiceMode:        string(loc.ServiceMode),
		fieldInsurances:         joinTags(loc.Insurances),
		fieldServiceRadiusMiles: strconv.FormatFloat(loc.ServiceRadiusMiles, 'f', -1, 64),
		fieldIsPrimary:          strconv.FormatBool(loc.IsPrimary),
		fieldIsFeatured:         strconv.FormatBool(loc.IsFeatured),
		fieldAcceptingClients:   strconv.FormatBool(l.AcceptingClients),
		fieldLanguages:          joinTags(l.Languages),
		fieldDelivery:           joinTags(l.Delivery),
		fieldPlanTier:           string(l.PlanTier),
	}
	if p, ok := loc.Coordinates.Get(); ok {
		m[fieldLat] = strconv.FormatFloat(p.Lat, 'f', -1, 64)
		m[fieldLng] = strconv.FormatFloat(p.Lng, 'f', -1, 64)
	}
	return m
}

func parseListingFields(m map[string]string) (directory.Listing, error) {
	tier, err := directory.ParsePlanTier(m[fieldPlanTier])
	if err != nil {
		return directory.Listing{}, fmt.Errorf("%w: listing %s: %w", domain.ErrInvalidRecord, m[fieldID], err)
	}
	return directory.Listing{
		ID:                m[fieldID],
		Slug:              m[fieldSlug],
		AgencyName:        m[fieldAgencyName],
		Headline:          m[fieldHeadline],
		Summary:           m[fieldSummary],
		LogoURL:           m[fieldLogoURL],
		PlanTier:          tier,
		AcceptingClients:  m[fieldAcceptingClients] == "true",
		Languages:         splitTags(m[fieldLanguages]),
		Delivery:          splitTags(m[fieldDelivery]),
		GoogleRating:      parseFloat(m[fieldGoogleRating]),
		GoogleRatingCount: parseInt(m[fieldGoogleRatingCount]),
	}, nil
}

func parseLocationFields(m map[string]string) (directory.Location, error) {
	mode, err := directory.ParseServiceMode(m[fieldServiceMode])
	if err != nil {
		return directory.Location{}, fmt.Errorf("%w: location %s: %w", domain.ErrInvalidRecord, m[fieldID], err)
	}
	radius, _ := parseFloat(m[fieldServiceRadiusMiles]).Get()
	return directory.Location{
		ID:                 m[fieldID],
		ListingID:          m[fieldListingID],
		Street:             m[fieldStreet],
		City:               m[fieldCity],
		State:              m[fieldState],
		PostalCode:         m[fieldPostalCode],
		Coordinates:        parsePoint(m[fieldLat], m[fieldLng]),
		ServiceMode:        mode,
		Insurances:         splitTags(m[fieldInsurances]),
		ServiceRadiusMiles: radius,
		IsPrimary:          m[fieldIsPrimary] == "true",
		IsFeatured:         m[fieldIsFeatured] == "true",
	}, nil
}

// parsePoint returns a coordinate only when both halves parse and are in range.
func parsePoint(lat, lng string) optional.Value[geo.Point] {
	la, okLat := parseFloat(lat).Get()
	ln, okLng := parseFloat(lng).Get()
	if !okLat || !okLng {
		return optional.Empty[geo.Point]()
	}
	p, ok := geo.NewPoint(la, ln)
	if !ok {
		return optional.Empty[geo.Point]()
	}
	return optional.Of(p)
}

func parseFloat(s string) optional.Value[float64] {
	if s == "" {
		return optional.Empty[float64]()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return optional.Empty[float64]()
	}
	return optional.Of(f)
}

func parseInt(s string) optional.Value[int] {
	if s == "" {
		return optional.Empty[int]()
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return optional.Empty[int]()
	}
	return optional.Of(n)
}

// joinTags drops the separator from values so each value stays one tag.
func joinTags(values []string) string {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(strings.ReplaceAll(v, tagSeparator, " "))
		if v != "" {
			clean = append(clean, v)
		}
	}
	return strings.Join(clean, tagSeparator)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, tagSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
