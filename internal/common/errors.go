// Package common defines shared constants and sentinel errors used across
// the jablog server, its repositories and the admin CLI. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrInvalidCredentials is the single error returned for a failed login.
	// Unknown email and wrong password must not be distinguishable.
	ErrInvalidCredentials = errors.New("Invalid email or password")

	// Session token errors (invalid, tampered or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Password reset errors.
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")
)
