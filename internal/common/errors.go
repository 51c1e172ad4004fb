// Package common defines sentinel errors shared by the storage, mirror and
// state layers of the journal. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before anything reaches a store.
	ErrorValidation = errors.New("validation error")

	// Remote mirror errors.
	ErrorKeyGeneration = errors.New("failed to generate remote key")
	ErrorUnavailable   = errors.New("remote mirror unavailable")

	// Configuration errors.
	ErrorUnknownDriver  = errors.New("unknown database driver")
	ErrorUnknownBackend = errors.New("unknown remote backend")
)
