// ABOUTME: Blog service that keeps posts and their owners' post lists in step
// ABOUTME: Every mutating operation authorizes first, then performs ordered writes

package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/bloglist/internal/auth"
	"github.com/2389/bloglist/internal/metrics"
	"github.com/2389/bloglist/internal/store"
)

// Tokens issues tokens at login and authorizes raw tokens on later requests.
type Tokens interface {
	auth.Authorizer
	Issue(ownerID, username string) (string, error)
}

// Options configures a Service.
type Options struct {
	// BcryptCost is the bcrypt cost for new password hashes.
	BcryptCost int
}

// Service implements every owner and post operation.
type Service struct {
	store   store.Store
	tokens  Tokens
	opts    Options
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewService creates a Service. A nil collector disables metrics.
func NewService(s store.Store, tokens Tokens, opts Options, logger *slog.Logger, m *metrics.Collector) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   s,
		tokens:  tokens,
		opts:    opts,
		metrics: m,
		logger:  logger.With("component", "blog"),
	}
}

// authorize verifies a raw token and maps auth errors to domain errors.
func (s *Service) authorize(token string) (*auth.Identity, error) {
	identity, err := s.tokens.Authorize(token)
	if err == nil {
		return identity, nil
	}
	if errors.Is(err, auth.ErrMissingToken) {
		return nil, ErrMissingToken
	}
	s.logger.Debug("token rejected", "error", err)
	return nil, ErrInvalidToken
}

// Reset deletes every owner and post.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	s.logger.Warn("all owners and posts deleted")
	return nil
}

// mapStoreNotFound converts store.ErrNotFound into ErrNotFound and wraps
// anything else as internal.
func mapStoreNotFound(err error, what string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}
