// ABOUTME: chi router setup: global middleware, CORS, metrics and routes
// ABOUTME: Includes the slog request logger and the unknown-endpoint handler

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/2389/bloglist/internal/auth"
)

// routes builds the HTTP handler.
func (s *Server) routes(logger *slog.Logger) http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(s.metrics.Middleware())
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(auth.TokenExtractor())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendJSONError(w, http.StatusNotFound, "unknown endpoint")
	})

	router.Get("/health", s.handleHealth)
	router.Get("/stats", s.handleStats)
	if s.metrics != nil {
		router.Handle(s.config.Metrics.Path, s.metrics.Handler())
	}

	router.Route("/posts", func(r chi.Router) {
		r.Get("/", s.handleListPosts)
		r.Post("/", s.handleCreatePost)
		r.Put("/like/{id}", s.handleLikePost)
		r.Get("/{id}", s.handleGetPost)
		r.Put("/{id}", s.handleUpdatePost)
		r.Delete("/{id}", s.handleDeletePost)
	})

	router.Route("/owners", func(r chi.Router) {
		r.Get("/", s.handleListOwners)
		r.Post("/", s.handleRegisterOwner)
		r.Get("/{id}", s.handleGetOwner)
	})

	router.Post("/login", s.handleLogin)

	if s.config.Testing.EnableReset {
		router.Post("/testing/reset", s.handleReset)
	}

	return router
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}
