// ABOUTME: Maps blog domain errors to HTTP status codes and JSON bodies
// ABOUTME: Internal errors are logged and never described to the caller

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/2389/bloglist/internal/blog"
)

// errorStatus pairs a domain error with its HTTP status.
type errorStatus struct {
	err    error
	status int
}

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []errorStatus{
	{blog.ErrValidation, http.StatusBadRequest},
	{blog.ErrMalformedID, http.StatusBadRequest},
	{blog.ErrDuplicateUsername, http.StatusBadRequest},
	{blog.ErrMissingToken, http.StatusUnauthorized},
	{blog.ErrInvalidCredentials, http.StatusUnauthorized},
	{blog.ErrPasswordTooShort, http.StatusUnauthorized},
	{blog.ErrPasswordTooLong, http.StatusUnauthorized},
	{blog.ErrPasswordMismatch, http.StatusUnauthorized},
	{blog.ErrInvalidToken, http.StatusForbidden},
	{blog.ErrForbidden, http.StatusForbidden},
	{blog.ErrNotFound, http.StatusNotFound},
}

// statusFor returns the status and caller-facing message for err.
func statusFor(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			if es.err == blog.ErrValidation {
				return es.status, err.Error()
			}
			return es.status, es.err.Error()
		}
	}
	if errors.Is(err, blog.ErrBackReferenceSync) {
		return http.StatusInternalServerError, blog.ErrBackReferenceSync.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// writeError translates a service error into a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	sendJSONError(w, status, msg)
}

// sendJSONError writes a JSON error response.
func sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
