package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a seed document. JSON input is accepted as a YAML subset.
type File struct {
	Listings []ListingRecord `yaml:"listings"`
	Places   []PlaceRecord   `yaml:"places"`
}

// ListingRecord is a listing with its nested locations.
type ListingRecord struct {
	ID                string           `yaml:"id"`
	Slug              string           `yaml:"slug"`
	AgencyName        string           `yaml:"agency_name"`
	Headline          string           `yaml:"headline"`
	Summary           string           `yaml:"summary"`
	LogoURL           string           `yaml:"logo_url"`
	PlanTier          string           `yaml:"plan_tier"`
	AcceptingClients  bool             `yaml:"accepting_clients"`
	Languages         []string         `yaml:"languages"`
	Delivery          []string         `yaml:"delivery"`
	GoogleRating      *float64         `yaml:"google_rating"`
	GoogleRatingCount *int             `yaml:"google_rating_count"`
	Locations         []LocationRecord `yaml:"locations"`
}

// LocationRecord is one site of a listing.
type LocationRecord struct {
	ID                 string   `yaml:"id"`
	Street             string   `yaml:"street"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	PostalCode         string   `yaml:"postal_code"`
	Lat                *float64 `yaml:"lat"`
	Lng                *float64 `yaml:"lng"`
	ServiceMode        string   `yaml:"service_mode"`
	Insurances         []string `yaml:"insurances"`
	ServiceRadiusMiles float64  `yaml:"service_radius_miles"`
	IsPrimary          bool     `yaml:"is_primary"`
	IsFeatured         bool     `yaml:"is_featured"`
}

// PlaceRecord is an unverified directory entry.
type PlaceRecord struct {
	ID          string   `yaml:"id"`
	Slug        string   `yaml:"slug"`
	Name        string   `yaml:"name"`
	Street      string   `yaml:"street"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	PostalCode  string   `yaml:"postal_code"`
	Lat         *float64 `yaml:"lat"`
	Lng         *float64 `yaml:"lng"`
	Phone       string   `yaml:"phone"`
	Website     string   `yaml:"website"`
	Rating      *float64 `yaml:"rating"`
	RatingCount *int     `yaml:"rating_count"`
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

// ParseFile reads and decodes a seed file.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close() //nolint:errcheck // read-only

	return Parse(fh)
}
