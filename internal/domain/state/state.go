// Package state canonicalizes US state tokens given as a two-letter
// abbreviation, a full name, or a URL slug.
package state

import "strings"

// State is a canonical name/abbreviation pair.
type State struct {
	Name         string
	Abbreviation string
}

// Slug returns the URL form of the name ("new-jersey").
func (s State) Slug() string {
	return slugify(s.Name)
}

var states = []State{
	{"Alabama", "AL"}, {"Alaska", "AK"}, {"Arizona", "AZ"}, {"Arkansas", "AR"},
	{"California", "CA"}, {"Colorado", "CO"}, {"Connecticut", "CT"}, {"Delaware", "DE"},
	{"District of Columbia", "DC"}, {"Florida", "FL"}, {"Georgia", "GA"}, {"Hawaii", "HI"},
	{"Idaho", "ID"}, {"Illinois", "IL"}, {"Indiana", "IN"}, {"Iowa", "IA"},
	{"Kansas", "KS"}, {"Kentucky", "KY"}, {"Louisiana", "LA"}, {"Maine", "ME"},
	{"Maryland", "MD"}, {"Massachusetts", "MA"}, {"Michigan", "MI"}, {"Minnesota", "MN"},
	{"Mississippi", "MS"}, {"Missouri", "MO"}, {"Montana", "MT"}, {"Nebraska", "NE"},
	{"Nevada", "NV"}, {"New Hampshire", "NH"}, {"New Jersey", "NJ"}, {"New Mexico", "NM"},
	{"New York", "NY"}, {"North Carolina", "NC"}, {"North Dakota", "ND"}, {"Ohio", "OH"},
	{"Oklahoma", "OK"}, {"Oregon", "OR"}, {"Pennsylvania", "PA"}, {"Puerto Rico", "PR"},
	{"Rhode Island", "RI"}, {"South Carolina", "SC"}, {"South Dakota", "SD"}, {"Tennessee", "TN"},
	{"Texas", "TX"}, {"Utah", "UT"}, {"Vermont", "VT"}, {"Virginia", "VA"},
	{"Washington", "WA"}, {"West Virginia", "WV"}, {"Wisconsin", "WI"}, {"Wyoming", "WY"},
}

// Lookup tables are built once and only read afterwards.
var (
	byAbbreviation = make(map[string]State, len(states))
	bySlug         = make(map[string]State, len(states))
	byName         = make(map[string]State, len(states))
)

func init() {
	for _, s := range states {
		byAbbreviation[s.Abbreviation] = s
		bySlug[slugify(s.Name)] = s
		byName[strings.ToLower(s.Name)] = s
	}
}

// Normalize maps a free-form token to its canonical pair.
// Abbreviation is tried first, then slug, then full name.
// ok is false for unrecognized input (provinces, typos, empty).
func Normalize(input string) (State, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return State{}, false
	}

	if upper := strings.ToUpper(trimmed); len(upper) == 2 {
		if s, ok := byAbbreviation[upper]; ok {
			return s, true
		}
	}

	if s, ok := bySlug[slugify(trimmed)]; ok {
		return s, true
	}

	if s, ok := byName[strings.ToLower(trimmed)]; ok {
		return s, true
	}

	return State{}, false
}

// All returns a copy of the known states in table order.
func All() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// slugify lower-cases and joins whitespace-separated words with "-".
func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
