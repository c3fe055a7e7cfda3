package operator

import "errors"

// Operator errors.
var (
	// ErrUnknownType indicates no operator type is registered under an ID.
	ErrUnknownType = errors.New("operator: unknown type")

	// ErrDuplicateType indicates a type ID is already registered.
	ErrDuplicateType = errors.New("operator: duplicate type")

	// ErrInvalidType indicates a type definition is malformed.
	ErrInvalidType = errors.New("operator: invalid type")

	// ErrMissingProperty indicates a required property was not set.
	ErrMissingProperty = errors.New("operator: missing required property")

	// ErrNotRepeatable indicates an operator cannot be replayed without an
	// event because it lacks an exec callback.
	ErrNotRepeatable = errors.New("operator: not repeatable")
)
