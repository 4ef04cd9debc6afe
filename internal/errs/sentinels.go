// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/http layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIDExists indicates a create request that already carries an identifier.
	ErrIDExists = errors.New("a new entity cannot already have an ID")

	// ErrIDNull indicates an update request without an identifier in the body.
	ErrIDNull = errors.New("invalid id")

	// ErrIDInvalid indicates a mismatch between the path and body identifiers.
	ErrIDInvalid = errors.New("invalid ID")

	// ErrIDNotFound indicates an update or patch of an entity that does not exist.
	ErrIDNotFound = errors.New("entity not found")

	// ErrTenantAlreadyUsed indicates a unique tenant violation (case-insensitive).
	ErrTenantAlreadyUsed = errors.New("company is already in use")

	// ErrValidation indicates an entity field outside of its constraints.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFilter indicates a malformed filter, sort or paging parameter.
	ErrInvalidFilter = errors.New("invalid filter")
)
