// ABOUTME: Request context slot for the raw, unverified bearer token
// ABOUTME: Provides WithRawToken/RawTokenFromContext used by the HTTP gate

package auth

import (
	"context"
)

// rawTokenKey is the key type for storing the raw token in context.Context.
type rawTokenKey struct{}

// WithRawToken returns a new context carrying the raw token string.
func WithRawToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, rawTokenKey{}, token)
}

// RawTokenFromContext returns the raw token, or "" if none was extracted.
// The token has not been verified.
func RawTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(rawTokenKey{}).(string)
	return token
}
