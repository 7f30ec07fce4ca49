// ABOUTME: Second stage of request authentication: raw token to identity
// ABOUTME: Distinguishes a missing token from one that fails verification

package auth

import (
	"errors"
)

// ErrMissingToken is returned when an operation needs a token and none was sent.
var ErrMissingToken = errors.New("missing token")

// Authorizer turns a raw token into a verified identity.
type Authorizer interface {
	Authorize(raw string) (*Identity, error)
}

// Ensure TokenCodec implements Authorizer.
var _ Authorizer = (*TokenCodec)(nil)

// Authorize checks presence first, then signature and subject.
func (c *TokenCodec) Authorize(raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}
	return c.Verify(raw)
}
