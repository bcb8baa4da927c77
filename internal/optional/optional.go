// Package optional provides a present/absent marker for patch fields.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds a T that may be absent. The zero Value is absent.
type Value[T any] struct {
	value T
	set   bool
}

// Of returns a present value.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// FromPtr returns a present value for non-nil p, absent otherwise.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

// IsSet reports whether the value is present.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Get returns the value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// OrElse returns the value when present and fallback otherwise.
func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}

// UnmarshalJSON marks the value present unless the JSON is null.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value[T]{}
		return nil
	}
	var inner T
	if err := json.Unmarshal(data, &inner); err != nil {
		return err
	}
	*v = Of(inner)
	return nil
}

// MarshalJSON encodes absent values as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
