// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/service layers.
var (
	// ErrNotFound indicates the referenced entity id is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates registration with an email that is already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials indicates a login with no matching email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidEmail indicates an address that fails the format check.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrSelfGrant indicates an owner granting board access to their own email.
	ErrSelfGrant = errors.New("cannot grant access to yourself")

	// ErrDuplicateGrant indicates an email that is already on the owner's member list.
	ErrDuplicateGrant = errors.New("email already has access")

	// ErrUnauthorized indicates a viewer without access to a board or dashboard.
	ErrUnauthorized = errors.New("unauthorized")
)
