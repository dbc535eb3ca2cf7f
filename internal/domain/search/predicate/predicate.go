// Package predicate turns search filters into structured tag conditions.
// Both sources share the state rule; only locations carry mode, insurance,
// language and accepting-clients tags.
package predicate

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/provdir/internal/domain/search/filter"
	"github.com/kailas-cloud/provdir/internal/domain/search/mode"
	"github.com/kailas-cloud/provdir/internal/domain/search/request"
	"github.com/kailas-cloud/provdir/internal/domain/state"
)

// Tag field names shared by the indexes.
const (
	FieldState            = "state"
	FieldCity             = "city"
	FieldServiceMode      = "service_mode"
	FieldDelivery         = "delivery"
	FieldInsurances       = "insurances"
	FieldLanguages        = "languages"
	FieldAcceptingClients = "accepting_clients"
	FieldListingID        = "listing_id"
)

// State matches a record stored under either the abbreviation or the full
// name. Unrecognized input falls back to equality on the raw token; the
// indexes keep state case-sensitive, so that match is literal.
func State(raw string) (filter.Condition, error) {
	if s, ok := state.Normalize(raw); ok {
		return filter.NewAnyOf(FieldState, s.Abbreviation, s.Name)
	}
	return filter.NewMatch(FieldState, raw)
}

// ServiceModes expands requested modes into alternatives. Any one of the
// returned conditions satisfies the request.
func ServiceModes(modes []mode.Mode) ([]filter.Condition, error) {
	var serviceModes, delivery []string
	for _, m := range modes {
		switch m {
		case mode.InHome:
			serviceModes = append(serviceModes, "in_home", "both")
		case mode.InCenter:
			serviceModes = append(serviceModes, "center_based", "both")
		case mode.Telehealth, mode.SchoolBased:
			delivery = append(delivery, string(m))
		default:
			return nil, fmt.Errorf("unsupported service mode: %q", m)
		}
	}

	var out []filter.Condition
	if len(serviceModes) > 0 {
		c, err := filter.NewAnyOf(FieldServiceMode, serviceModes...)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(delivery) > 0 {
		c, err := filter.NewAnyOf(FieldDelivery, delivery...)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Locations builds the pushed-down expression for the internal registry.
func Locations(f request.Filters) (filter.Expression, error) {
	var must []filter.Condition

	if f.State != "" {
		c, err := State(f.State)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if len(f.Insurances) > 0 {
		c, err := filter.NewAnyOf(FieldInsurances, f.Insurances...)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if len(f.Languages) > 0 {
		c, err := filter.NewAnyOf(FieldLanguages, f.Languages...)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}
	if accepting, ok := f.AcceptingClients.Get(); ok {
		c, err := filter.NewMatch(FieldAcceptingClients, strconv.FormatBool(accepting))
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, c)
	}

	should, err := ServiceModes(f.ServiceModes)
	if err != nil {
		return filter.Expression{}, err
	}
	return filter.NewExpression(must, should)
}

// Places builds the pushed-down expression for the external directory.
// Mode, insurance, language and accepting filters do not apply to it.
func Places(f request.Filters) (filter.Expression, error) {
	if f.State == "" {
		return filter.Expression{}, nil
	}
	c, err := State(f.State)
	if err != nil {
		return filter.Expression{}, err
	}
	return filter.NewExpression([]filter.Condition{c}, nil)
}
