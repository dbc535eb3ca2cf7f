// Package filter holds structured tag predicates. Storage adapters render
// them into their own query syntax; nothing upstream builds query strings.
package filter

import (
	"fmt"
	"strings"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// MaxValuesPerCondition caps the alternatives inside one condition.
const MaxValuesPerCondition = 64

// Expression is a structured filter: every must condition holds, and at least
// one should condition holds when the should group is non-empty.
type Expression struct {
	must   []Condition
	should []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0
}

// String is a backend-neutral rendering for logs. It is not injective:
// a value containing | reads like two alternatives.
func (e Expression) String() string {
	if e.IsEmpty() {
		return "*"
	}
	var b strings.Builder
	for i, c := range e.must {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(c.String())
	}
	if len(e.should) > 0 {
		if len(e.must) > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString("(")
		for i, c := range e.should {
			if i > 0 {
				b.WriteString(" OR ")
			}
			b.WriteString(c.String())
		}
		b.WriteString(")")
	}
	return b.String()
}

// Condition matches a tag field against one or more alternative values.
type Condition struct {
	key    string
	values []string
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	return NewAnyOf(key, match)
}

// NewAnyOf creates a tag condition that holds when the field carries any of values.
// Empty and duplicate values are dropped; at least one must remain.
func NewAnyOf(key string, values ...string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) > MaxValuesPerCondition {
		return Condition{}, fmt.Errorf("too many values for key %q (max %d)", key, MaxValuesPerCondition)
	}
	seen := make(map[string]struct{}, len(values))
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, values: kept}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Values returns the alternatives, in construction order.
func (c Condition) Values() []string { return c.values }

// Match returns the first alternative (the only one for NewMatch).
func (c Condition) Match() string {
	if len(c.values) == 0 {
		return ""
	}
	return c.values[0]
}

// String renders the condition as key=v1|v2.
func (c Condition) String() string {
	return c.key + "=" + strings.Join(c.values, "|")
}
