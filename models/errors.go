package models

import (
	"errors"
	"fmt"
)

var ErrInvalidField = errors.New("invalid field")

// FieldError reports a value longer than its column allows.
type FieldError struct {
	Field string
	Max   int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}
