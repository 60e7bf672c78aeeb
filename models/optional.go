package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a field of a sparse update. Set reports whether the key was present
// in the decoded document; a present null leaves Set true and Value nil.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional with no value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// applyValue assigns a present, non-null value to a required column.
func applyValue[T any](dst *T, o Optional[T], column string, changed []string) []string {
	if !o.Set || o.Value == nil {
		return changed
	}
	*dst = *o.Value
	return append(changed, column)
}

// applyNullable assigns a present value to a nullable column; null clears it.
func applyNullable[T any](dst **T, o Optional[T], column string, changed []string) []string {
	if !o.Set {
		return changed
	}
	if o.Value == nil {
		*dst = nil
	} else {
		v := *o.Value
		*dst = &v
	}
	return append(changed, column)
}

func checkLength(field string, o Optional[string], max int) error {
	if o.Value != nil && len([]rune(*o.Value)) > max {
		return &FieldError{Field: field, Max: max}
	}
	return nil
}
