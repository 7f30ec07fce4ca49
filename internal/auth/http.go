// ABOUTME: HTTP middleware that extracts bearer tokens from requests
// ABOUTME: Stores the raw token on the context without verifying it

package auth

import (
	"net/http"
	"strings"
)

// bearerPrefix is matched case-sensitively.
const bearerPrefix = "bearer "

// extractBearerToken returns the token from an Authorization header value,
// or "" when the header is absent or not of the form "bearer <token>".
func extractBearerToken(authHeader string) string {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, bearerPrefix)
}

// TokenExtractor creates an HTTP middleware that copies the bearer token into
// the request context. It never rejects a request: operations that need an
// identity call Authorize themselves.
func TokenExtractor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRawToken(r.Context(), token)))
		})
	}
}
