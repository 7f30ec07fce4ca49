// Package auth provides credential handling for bloglist.
//
// # Passwords
//
// Passwords are hashed with bcrypt at the configured cost (auth.bcrypt_cost).
// BurnPasswordCheck runs a comparison against a fixed hash so that a login for
// an unknown username costs the same as a login with a wrong password.
//
// # Tokens
//
// Tokens are HS256 JWTs signed with auth.token_secret and carry two claims:
//
//	{"id": "<owner id>", "username": "<username>", "iat": ...}
//
// There is no expiry, refresh or revocation. A token whose signature checks
// out but has an empty id fails with ErrTokenMissingSubject, which also
// matches ErrInvalidToken.
//
// # Two-stage authentication
//
// Authentication of HTTP requests is split in two:
//
//  1. TokenExtractor middleware copies the token from an
//     "Authorization: bearer <token>" header into the request context.
//     The prefix is lowercase and matched exactly. Nothing is rejected here.
//  2. Operations that need an identity call Authorize with
//     RawTokenFromContext(ctx). An empty token yields ErrMissingToken; a token
//     that fails verification yields ErrInvalidToken.
//
// Read-only endpoints never reach the second stage.
package auth
