package chi

import (
	"github.com/kailas-cloud/provdir/internal/domain/directory"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Results           []any `json:"results"`
	RealListingsCount int   `json:"realListingsCount"`
	GooglePlacesCount int   `json:"googlePlacesCount"`
	Total             int   `json:"total"`
	Page              int   `json:"page"`
	TotalPages        int   `json:"totalPages"`
	HasMore           bool  `json:"hasMore"`
}

// LocationItem is a verified location row.
type LocationItem struct {
	IsPrePopulated        bool                    `json:"isPrePopulated"`
	LocationID            string                  `json:"locationId"`
	ListingID             string                  `json:"listingId"`
	Slug                  string                  `json:"slug"`
	AgencyName            string                  `json:"agencyName"`
	PlanTier              string                  `json:"planTier"`
	City                  string                  `json:"city"`
	State                 string                  `json:"state"`
	Street                string                  `json:"street"`
	PostalCode            string                  `json:"postalCode"`
	ServiceMode           string                  `json:"serviceMode"`
	Insurances            []string                `json:"insurances"`
	ServiceRadiusMiles    float64                 `json:"serviceRadiusMiles"`
	IsPrimary             bool                    `json:"isPrimary"`
	IsFeatured            bool                    `json:"isFeatured"`
	GoogleRating          optional.Value[float64] `json:"googleRating"`
	GoogleRatingCount     optional.Value[int]     `json:"googleRatingCount"`
	DistanceMiles         optional.Value[float64] `json:"distanceMiles"`
	IsWithinServiceRadius bool                    `json:"isWithinServiceRadius"`
	OtherLocationsCount   int                     `json:"otherLocationsCount"`
	Headline              string                  `json:"headline"`
	Summary               string                  `json:"summary"`
	LogoURL               string                  `json:"logoUrl"`
	IsAcceptingClients    bool                    `json:"isAcceptingClients"`
}

// PlaceItem is an unverified directory row.
type PlaceItem struct {
	IsPrePopulated    bool                    `json:"isPrePopulated"`
	ID                string                  `json:"id"`
	Slug              string                  `json:"slug"`
	Name              string                  `json:"name"`
	City              string                  `json:"city"`
	State             string                  `json:"state"`
	Street            string                  `json:"street"`
	PostalCode        string                  `json:"postalCode"`
	Phone             string                  `json:"phone"`
	Website           string                  `json:"website"`
	GoogleRating      optional.Value[float64] `json:"googleRating"`
	GoogleRatingCount optional.Value[int]     `json:"googleRatingCount"`
	DistanceMiles     optional.Value[float64] `json:"distanceMiles"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// NewSearchResponse maps a blended page to its wire form.
func NewSearchResponse(p *directory.Page) SearchResponse {
	items := make([]any, 0, len(p.Results))
	for _, r := range p.Results {
		switch v := r.(type) {
		case directory.LocationResult:
			items = append(items, locationToItem(&v))
		case directory.PlaceResult:
			items = append(items, placeToItem(&v))
		}
	}
	return SearchResponse{
		Results:           items,
		RealListingsCount: p.InternalTotal,
		GooglePlacesCount: p.ExternalTotal,
		Total:             p.Total,
		Page:              p.Page,
		TotalPages:        p.TotalPages,
		HasMore:           p.HasMore,
	}
}

func locationToItem(r *directory.LocationResult) LocationItem {
	insurances := r.Location.Insurances
	if insurances == nil {
		insurances = []string{}
	}
	return LocationItem{
		IsPrePopulated:        false,
		LocationID:            r.Location.ID,
		ListingID:             r.Listing.ID,
		Slug:                  r.Listing.Slug,
		AgencyName:            r.Listing.AgencyName,
		PlanTier:              string(r.Listing.PlanTier),
		City:                  r.Location.City,
		State:                 r.Location.State,
		Street:                r.Location.Street,
		PostalCode:            r.Location.PostalCode,
		ServiceMode:           string(r.Location.ServiceMode),
		Insurances:            insurances,
		ServiceRadiusMiles:    r.Location.ServiceRadiusMiles,
		IsPrimary:             r.Location.IsPrimary,
		IsFeatured:            r.Location.IsFeatured,
		GoogleRating:          r.Listing.GoogleRating,
		GoogleRatingCount:     r.Listing.GoogleRatingCount,
		DistanceMiles:         r.DistanceMiles,
		IsWithinServiceRadius: r.WithinServiceRadius,
		OtherLocationsCount:   r.OtherLocationsCount,
		Headline:              r.Listing.Headline,
		Summary:               r.Listing.Summary,
		LogoURL:               r.Listing.LogoURL,
		IsAcceptingClients:    r.Listing.AcceptingClients,
	}
}

func placeToItem(r *directory.PlaceResult) PlaceItem {
	return PlaceItem{
		IsPrePopulated:    true,
		ID:                r.Place.ID,
		Slug:              r.Place.Slug,
		Name:              r.Place.Name,
		City:              r.Place.City,
		State:             r.Place.State,
		Street:            r.Place.Street,
		PostalCode:        r.Place.PostalCode,
		Phone:             r.Place.Phone,
		Website:           r.Place.Website,
		GoogleRating:      r.Place.Rating,
		GoogleRatingCount: r.Place.RatingCount,
		DistanceMiles:     r.DistanceMiles,
	}
}
