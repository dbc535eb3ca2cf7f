// Package mode lists the service modes a searcher can ask for.
package mode

// Mode is a requested way of receiving service.
type Mode string

// Requested service modes.
const (
	InHome      Mode = "in_home"
	InCenter    Mode = "in_center"
	Telehealth  Mode = "telehealth"
	SchoolBased Mode = "school_based"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == InHome || m == InCenter || m == Telehealth || m == SchoolBased
}

// IsDelivery reports whether the mode is a listing-level delivery option
// (telehealth, school based) rather than a location service mode.
func (m Mode) IsDelivery() bool {
	return m == Telehealth || m == SchoolBased
}

// Parse converts raw strings. Duplicates are dropped; unknown values are
// skipped and returned separately.
func Parse(raw []string) (modes []Mode, unknown []string) {
	modes = make([]Mode, 0, len(raw))
	seen := make(map[Mode]struct{}, len(raw))
	for _, r := range raw {
		m := Mode(r)
		if !m.IsValid() {
			unknown = append(unknown, r)
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		modes = append(modes, m)
	}
	return modes, unknown
}
