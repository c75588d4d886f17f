// Package common defines shared constants and sentinel errors used across
// the weather-monitor components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Directory-level errors.
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorForbidden          = errors.New("forbidden")

	// Generic/internal flow control.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")
)
