// Package patch models the fields of a partial update.
//
// A Field distinguishes three states: absent from the payload, explicitly
// null, and set to a value. Absent fields leave stored data untouched.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state optional value decoded from JSON.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Value returns a Field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// Set reports whether the field was supplied at all.
func (f Field[T]) Set() bool { return f.set }

// IsNull reports whether the field was supplied as null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and whether a non-null value was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

// Ptr returns nil for absent and null fields.
func (f Field[T]) Ptr() *T {
	if !f.set || f.null {
		return nil
	}
	v := f.value
	return &v
}

// Clear resets the field to absent.
func (f *Field[T]) Clear() {
	var zero T
	f.value, f.set, f.null = zero, false, false
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.value, f.null = zero, true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Any reports whether at least one of fields was supplied.
func Any(fields ...interface{ Set() bool }) bool {
	for _, f := range fields {
		if f.Set() {
			return true
		}
	}
	return false
}
