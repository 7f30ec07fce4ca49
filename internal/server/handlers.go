// ABOUTME: HTTP handlers for posts, owners, login, stats and test reset
// ABOUTME: Each handler decodes input, calls the blog service and encodes the result

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/2389/bloglist/internal/auth"
	"github.com/2389/bloglist/internal/blog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid JSON body")

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidJSON
	}
	return nil
}

// handleListPosts handles GET /posts.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.service.ListPosts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleGetPost handles GET /posts/{id}.
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleCreatePost handles POST /posts.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := s.service.CreatePost(r.Context(), auth.RawTokenFromContext(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleUpdatePost handles PUT /posts/{id}.
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := s.service.UpdatePost(r.Context(), auth.RawTokenFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleLikePost handles PUT /posts/like/{id}. An unknown id is reported as
// 403, unlike the other post routes.
func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := s.service.LikePost(r.Context(), chi.URLParam(r, "id"), in)
	if errors.Is(err, blog.ErrNotFound) {
		sendJSONError(w, http.StatusForbidden, "post not found")
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleDeletePost handles DELETE /posts/{id}.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	err := s.service.DeletePost(r.Context(), auth.RawTokenFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListOwners handles GET /owners.
func (s *Server) handleListOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := s.service.ListOwners(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, owners)
}

// handleGetOwner handles GET /owners/{id}.
func (s *Server) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := s.service.GetOwner(r.Context(), auth.RawTokenFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, owner)
}

// handleRegisterOwner handles POST /owners.
func (s *Server) handleRegisterOwner(w http.ResponseWriter, r *http.Request) {
	var in blog.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	owner, err := s.service.RegisterOwner(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, owner)
}

// handleLogin handles POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in blog.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Authenticate(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleStats handles GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleReset handles POST /testing/reset.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
