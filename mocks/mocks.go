package mocks

import "github.com/stretchr/testify/mock"

// get returns argument i as T, or the zero value when the expectation returned nil.
func get[T any](args mock.Arguments, i int) T {
	var zero T
	v := args.Get(i)
	if v == nil {
		return zero
	}
	return v.(T)
}
