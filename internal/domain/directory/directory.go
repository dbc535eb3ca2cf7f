// Package directory holds the records the search engine reads and the
// projections it returns.
package directory

import (
	"fmt"

	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
)

// ServiceMode is how a location delivers service.
type ServiceMode string

// Location service modes.
const (
	CenterBased ServiceMode = "center_based"
	InHome      ServiceMode = "in_home"
	Both        ServiceMode = "both"
)

// IsValid checks if the mode is one of the supported values.
func (m ServiceMode) IsValid() bool {
	return m == CenterBased || m == InHome || m == Both
}

// PlanTier is the owning business's paid plan.
type PlanTier string

// Plan tiers.
const (
	TierFree       PlanTier = "free"
	TierPro        PlanTier = "pro"
	TierEnterprise PlanTier = "enterprise"
)

// IsValid checks if the tier is one of the supported values.
func (t PlanTier) IsValid() bool {
	return t == TierFree || t == TierPro || t == TierEnterprise
}

// IsPaid reports whether the tier is any paid plan. Pro and enterprise rank equally.
func (t PlanTier) IsPaid() bool {
	return t == TierPro || t == TierEnterprise
}

// ParseServiceMode validates a stored service mode.
func ParseServiceMode(s string) (ServiceMode, error) {
	m := ServiceMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid service mode: %q", s)
	}
	return m, nil
}

// ParsePlanTier validates a stored plan tier. Empty means free.
func ParsePlanTier(s string) (PlanTier, error) {
	if s == "" {
		return TierFree, nil
	}
	t := PlanTier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid plan tier: %q", s)
	}
	return t, nil
}

// Listing is the owning business projection shared by its locations.
type Listing struct {
	ID                string
	Slug              string
	AgencyName        string
	Headline          string
	Summary           string
	LogoURL           string
	PlanTier          PlanTier
	AcceptingClients  bool
	Languages         []string
	Delivery          []string // telehealth, school_based
	GoogleRating      optional.Value[float64]
	GoogleRatingCount optional.Value[int]
}

// Location is one verified service site of a listing.
type Location struct {
	ID                 string
	ListingID          string
	Street             string
	City               string
	State              string
	PostalCode         string
	Coordinates        optional.Value[geo.Point]
	ServiceMode        ServiceMode
	Insurances         []string
	ServiceRadiusMiles float64
	IsPrimary          bool
	IsFeatured         bool
}

// Place is an unverified, passively collected directory entry.
type Place struct {
	ID          string
	Slug        string
	Name        string
	Street      string
	City        string
	State       string
	PostalCode  string
	Coordinates optional.Value[geo.Point]
	Phone       string
	Website     string
	Rating      optional.Value[float64]
	RatingCount optional.Value[int]
}
