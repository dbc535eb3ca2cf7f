// Package optional holds a value that may be absent, so that "unknown"
// never collapses into a zero value (distance 0, rating 0, coordinate 0,0).
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is either empty or holds a T.
type Value[T any] struct {
	v  T
	ok bool
}

// Of returns a present value.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// Empty returns an absent value.
func Empty[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nil-able pointer (as produced by JSON or query binding).
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

// Get returns the value and whether it is present.
func (o Value[T]) Get() (T, bool) { return o.v, o.ok }

// IsSet reports whether a value is present.
func (o Value[T]) IsSet() bool { return o.ok }

// OrElse returns the value or fallback when absent.
func (o Value[T]) OrElse(fallback T) T {
	if o.ok {
		return o.v
	}
	return fallback
}

// Ptr returns a pointer to a copy of the value, nil when absent.
func (o Value[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.v
	return &v
}

// MarshalJSON encodes an absent value as null.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as absent.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Value[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Of(v)
	return nil
}
