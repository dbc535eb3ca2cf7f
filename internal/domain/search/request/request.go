package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/provdir/internal/domain/geo"
	"github.com/kailas-cloud/provdir/internal/domain/optional"
	"github.com/kailas-cloud/provdir/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the longest free-text query kept, in characters.
	MaxQueryLength = 256
	DefaultLimit   = 20
	MaxLimit       = 100
	// MaxListValues caps each multi-valued filter (insurances, languages).
	MaxListValues = 32
)

// Limits are the page-size bounds applied by New.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultLimits returns the built-in page-size bounds.
func DefaultLimits() Limits {
	return Limits{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit}
}

// Params is raw search input as received from a transport.
type Params struct {
	Query            string
	State            string
	City             string
	ServiceModes     []string
	Insurances       []string
	Languages        []string
	AcceptingClients *bool
	UserLat          *float64
	UserLng          *float64
	RadiusMiles      *float64
	Page             int
	Limit            int
}

// Filters are the immutable search filters shared by both sources.
type Filters struct {
	Query            string
	State            string
	City             string
	ServiceModes     []mode.Mode
	Insurances       []string
	Languages        []string
	AcceptingClients optional.Value[bool]
	Searcher         optional.Value[geo.Point]
	// RadiusMiles is informational only; results are never excluded by it.
	RadiusMiles optional.Value[float64]
}

// Request is a validated search query with its page window.
type Request struct {
	filters            Filters
	page               int
	limit              int
	coordinatesIgnored bool
	adjustments        []string
}

// New normalizes search parameters. No input is rejected.
// page < 1 becomes 1; limit < 1 becomes the default; limit above the max is clamped.
// Half-specified or out-of-range coordinates are dropped (see CoordinatesIgnored).
// Unknown service modes are dropped, and an over-long query or filter list is
// truncated (see Adjustments).
func New(p Params, lim Limits) Request {
	if lim.DefaultLimit <= 0 {
		lim.DefaultLimit = DefaultLimit
	}
	if lim.MaxLimit <= 0 {
		lim.MaxLimit = MaxLimit
	}

	var adj []string

	query := strings.TrimSpace(p.Query)
	if utf8.RuneCountInString(query) > MaxQueryLength {
		query = strings.TrimSpace(string([]rune(query)[:MaxQueryLength]))
		adj = append(adj, fmt.Sprintf("query truncated to %d characters", MaxQueryLength))
	}

	modes, unknown := mode.Parse(p.ServiceModes)
	for _, u := range unknown {
		adj = append(adj, fmt.Sprintf("unknown service mode %q dropped", u))
	}

	insurances := cleanList(p.Insurances)
	if len(insurances) > MaxListValues {
		insurances = insurances[:MaxListValues]
		adj = append(adj, fmt.Sprintf("insurances truncated to %d values", MaxListValues))
	}
	languages := cleanList(p.Languages)
	if len(languages) > MaxListValues {
		languages = languages[:MaxListValues]
		adj = append(adj, fmt.Sprintf("languages truncated to %d values", MaxListValues))
	}

	f := Filters{
		Query:            query,
		State:            strings.TrimSpace(p.State),
		City:             strings.TrimSpace(p.City),
		ServiceModes:     modes,
		Insurances:       insurances,
		Languages:        languages,
		AcceptingClients: optional.FromPtr(p.AcceptingClients),
	}

	var ignored bool
	switch {
	case p.UserLat != nil && p.UserLng != nil:
		if pt, ok := geo.NewPoint(*p.UserLat, *p.UserLng); ok {
			f.Searcher = optional.Of(pt)
		} else {
			ignored = true
		}
	case p.UserLat != nil || p.UserLng != nil:
		ignored = true
	}

	if p.RadiusMiles != nil && *p.RadiusMiles > 0 {
		f.RadiusMiles = optional.Of(*p.RadiusMiles)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = lim.DefaultLimit
	}
	if limit > lim.MaxLimit {
		limit = lim.MaxLimit
	}

	return Request{filters: f, page: page, limit: limit, coordinatesIgnored: ignored, adjustments: adj}
}

// Filters returns the search filters.
func (r *Request) Filters() Filters { return r.filters }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// CoordinatesIgnored reports whether supplied searcher coordinates were unusable.
func (r *Request) CoordinatesIgnored() bool { return r.coordinatesIgnored }

// Adjustments describes filter input New dropped or truncated, in input order.
func (r *Request) Adjustments() []string { return r.adjustments }

// cleanList trims values and drops empties and exact duplicates.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
