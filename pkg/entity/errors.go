package entity

import (
	"errors"
	"fmt"
)

// ErrMissingEntity matches any *MissingEntityError via errors.Is.
var ErrMissingEntity = errors.New("entity: not found")

// MissingEntityError reports a configured identifier that no longer resolves.
type MissingEntityError struct {
	EntityType string
	ID         string
}

func (e *MissingEntityError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("entity: %s without identifier cannot be loaded", e.EntityType)
	}
	return fmt.Sprintf("entity: %s %q not found", e.EntityType, e.ID)
}

func (e *MissingEntityError) Is(target error) bool {
	return target == ErrMissingEntity
}
