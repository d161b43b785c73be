package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown usernames and
	// wrong passwords surface identically.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a malformed, unsigned or tampered token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthorized indicates a request without a usable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSuperuserRequired indicates an authenticated account lacking the
	// superuser role.
	ErrSuperuserRequired = errors.New("superuser required")
	// ErrDuplicate indicates a uniqueness violation on write.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrHashing indicates an internal password hashing failure.
	ErrHashing = errors.New("password hashing failed")
)
