package component

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidComponentKey is returned when a type name cannot be turned
	// into a valid component key.
	ErrInvalidComponentKey = errors.New("invalid component key")
	// ErrComponentCollision is returned when two distinct types claim the
	// same component key with incompatible schemas.
	ErrComponentCollision = errors.New("component key collision")
)

// KeyViolationError reports a derived key that does not match the key grammar.
type KeyViolationError struct {
	Type string
	Key  string
}

func (e *KeyViolationError) Error() string {
	return fmt.Sprintf("invalid component key %q derived from type %s: must match %s", e.Key, e.Type, keyPattern.String())
}

func (e *KeyViolationError) Unwrap() error {
	return ErrInvalidComponentKey
}

// CollisionError reports two distinct types mapped to one key.
type CollisionError struct {
	Key      string
	Existing string
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("component %q is claimed by both %s and %s with incompatible schemas", e.Key, e.Existing, e.Incoming)
}

func (e *CollisionError) Unwrap() error {
	return ErrComponentCollision
}
