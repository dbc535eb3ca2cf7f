package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRecord signals a stored or seeded record that fails validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrTooManyCandidates signals a match set larger than the configured
	// max_candidates cap. The source is reported degraded instead of ranked partially.
	ErrTooManyCandidates = errors.New("too many candidates")
	// ErrSourceUnavailable signals that a result source could not be read.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// SourceError wraps ErrSourceUnavailable with the failing source and stage.
type SourceError struct {
	Source string // internal, external
	Stage  string // count, fetch
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrSourceUnavailable.Error(), e.Source, e.Stage, e.Err)
}

func (e *SourceError) Unwrap() []error { return []error{ErrSourceUnavailable, e.Err} }

// NewSourceError creates a source error.
func NewSourceError(source, stage string, err error) error {
	return &SourceError{Source: source, Stage: stage, Err: err}
}
