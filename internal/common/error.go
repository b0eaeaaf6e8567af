// Package common defines shared constants and sentinel errors used across
// the data-access layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors, detected before any store call.
	ErrorInvalidInput = errors.New("invalid input")

	// Uniqueness violations reported by the store.
	ErrorDuplicateAccount = errors.New("account already exists")
	ErrorDuplicateToken   = errors.New("token already in use")

	// Absence of a targeted record.
	ErrorUserNotFound    = errors.New("user not found")
	ErrorSessionNotFound = errors.New("session not found")

	// Transport or store-level failure; not interpreted further here and
	// never retried by this layer.
	ErrorStoreUnavailable = errors.New("store unavailable")
)
