package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every missing-reference error.
	ErrNotFound = errors.New("not found")
	// ErrConflict is reserved; no operation returns it yet.
	ErrConflict                = errors.New("conflict")
	ErrFailedToInitializeCache = fmt.Errorf("failed to initialize cache")
)

var (
	ErrWorkflowDefinitionNotFound = errors.New("ai workflow definition not found")
	ErrModelProviderNotFound      = errors.New("model provider not found")
)

// referenceNotFound is returned when a create names a record that does not exist.
type referenceNotFound struct {
	sentinel error
	ID       string
}

func (e *referenceNotFound) Error() string {
	return fmt.Sprintf("%s: %s", e.sentinel, e.ID)
}

func (e *referenceNotFound) Is(target error) bool {
	return target == ErrNotFound || target == e.sentinel
}

func newReferenceNotFoundError(sentinel error, id string) error {
	return &referenceNotFound{
		sentinel: sentinel,
		ID:       id,
	}
}
