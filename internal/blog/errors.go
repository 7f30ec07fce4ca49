// ABOUTME: Domain errors returned by the blog service
// ABOUTME: The HTTP layer maps each sentinel to exactly one status code

package blog

import "errors"

// Domain errors. Anything not matching one of these is an internal error.
var (
	ErrValidation         = errors.New("validation failed")
	ErrMalformedID        = errors.New("malformatted id")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("not the owner of this post")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrPasswordMismatch   = errors.New("password and passwordConfirmation don't match")

	// ErrBackReferenceSync means the first write of a two-write operation
	// succeeded and the owner's post list could not be updated to match.
	ErrBackReferenceSync = errors.New("owner post list out of sync")
)
