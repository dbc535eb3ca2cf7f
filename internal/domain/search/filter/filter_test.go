package filter

import (
	"strings"
	"testing"
)

// --- Condition tests ---

func TestNewMatch_Valid(t *testing.T) {
	c, err := NewMatch("state", "NJ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Key() != "state" {
		t.Errorf("Key() = %q", c.Key())
	}
	if c.Match() != "NJ" {
		t.Errorf("Match() = %q", c.Match())
	}
	if len(c.Values()) != 1 {
		t.Errorf("Values() len = %d", len(c.Values()))
	}
}

func TestNewMatch_EmptyKey(t *testing.T) {
	_, err := NewMatch("", "NJ")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "key is required") {
		t.Errorf("error = %q", err)
	}
}

func TestNewMatch_EmptyValue(t *testing.T) {
	_, err := NewMatch("state", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "match value") {
		t.Errorf("error = %q", err)
	}
}

func TestNewAnyOf_DropsEmptyAndDuplicates(t *testing.T) {
	c, err := NewAnyOf("service_mode", "in_home", "", "both", "in_home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := c.Values()
	if len(got) != 2 || got[0] != "in_home" || got[1] != "both" {
		t.Errorf("Values() = %v", got)
	}
}

func TestNewAnyOf_AllEmpty(t *testing.T) {
	if _, err := NewAnyOf("insurances", "", ""); err == nil {
		t.Fatal("expected error when no value remains")
	}
}

func TestNewAnyOf_TooManyValues(t *testing.T) {
	values := make([]string, MaxValuesPerCondition+1)
	for i := range values {
		values[i] = strings.Repeat("x", i+1)
	}
	_, err := NewAnyOf("insurances", values...)
	if err == nil {
		t.Fatal("expected error for too many values")
	}
	if !strings.Contains(err.Error(), "too many values") {
		t.Errorf("error = %q", err)
	}
}

// --- Expression tests ---

func TestNewExpression_Valid(t *testing.T) {
	m, _ := NewMatch("state", "NJ")
	expr, err := NewExpression([]Condition{m}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expr.Must()) != 1 {
		t.Errorf("Must() len = %d", len(expr.Must()))
	}
	if len(expr.Should()) != 0 {
		t.Errorf("Should() len = %d", len(expr.Should()))
	}
	if expr.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty expression")
	}
}

func TestNewExpression_Empty(t *testing.T) {
	expr, err := NewExpression(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expr.IsEmpty() {
		t.Error("IsEmpty() = false for empty expression")
	}
	if expr.String() != "*" {
		t.Errorf("String() = %q, want *", expr.String())
	}
}

func TestNewExpression_TooManyMust(t *testing.T) {
	conds := make([]Condition, MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i] = Condition{key: "k", values: []string{"v"}}
	}
	_, err := NewExpression(conds, nil)
	if err == nil {
		t.Fatal("expected error for too many must conditions")
	}
	if !strings.Contains(err.Error(), "too many must") {
		t.Errorf("error = %q", err)
	}
}

func TestNewExpression_TooManyShould(t *testing.T) {
	conds := make([]Condition, MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i] = Condition{key: "k", values: []string{"v"}}
	}
	_, err := NewExpression(nil, conds)
	if err == nil {
		t.Fatal("expected error for too many should conditions")
	}
	if !strings.Contains(err.Error(), "too many should") {
		t.Errorf("error = %q", err)
	}
}

func TestExpression_String(t *testing.T) {
	st, _ := NewAnyOf("state", "NJ", "New Jersey")
	acc, _ := NewMatch("accepting_clients", "true")
	home, _ := NewAnyOf("service_mode", "in_home", "both")
	tele, _ := NewMatch("delivery", "telehealth")

	expr, err := NewExpression([]Condition{st, acc}, []Condition{home, tele})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "state=NJ|New Jersey AND accepting_clients=true AND (service_mode=in_home|both OR delivery=telehealth)"
	if got := expr.String(); got != want {
		t.Errorf("String() =\n  %q\nwant\n  %q", got, want)
	}
}
