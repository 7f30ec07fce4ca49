// ABOUTME: Owner operations: registration, login and populated reads
// ABOUTME: Unknown usernames and wrong passwords fail identically

package blog

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/2389/bloglist/internal/auth"
	"github.com/2389/bloglist/internal/store"
)

const (
	minPasswordLength = 5
	maxPasswordLength = 15
)

// RegisterOwner creates a new owner. Password rules are checked before field
// rules: too short, too long, then confirmation mismatch.
func (s *Service) RegisterOwner(ctx context.Context, in RegisterInput) (*OwnerView, error) {
	n := utf8.RuneCountInString(in.Password)
	switch {
	case n < minPasswordLength:
		return nil, ErrPasswordTooShort
	case n > maxPasswordLength:
		return nil, ErrPasswordTooLong
	case in.Password != in.PasswordConfirmation:
		return nil, ErrPasswordMismatch
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	owner := &store.Owner{
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
	}
	if err := s.store.CreateOwner(ctx, owner); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("creating owner: %w", err)
	}

	s.metrics.RecordOwnerRegistered()
	s.logger.Info("owner registered", "owner_id", owner.ID, "username", owner.Username)
	return newOwnerView(owner), nil
}

// Authenticate checks a username and password and issues a token.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*LoginResult, error) {
	owner, err := s.store.GetOwnerByUsername(ctx, in.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("looking up owner: %w", err)
		}
		// Same cost as a wrong password
		auth.BurnPasswordCheck(in.Password)
		s.metrics.RecordLogin(false)
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(owner.PasswordHash, in.Password) {
		s.metrics.RecordLogin(false)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(owner.ID, owner.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.metrics.RecordLogin(true)
	s.logger.Debug("owner logged in", "owner_id", owner.ID)
	return &LoginResult{
		Token:       token,
		Username:    owner.Username,
		DisplayName: owner.DisplayName,
		OwnerID:     owner.ID,
	}, nil
}

// ListOwners returns every owner with their posts resolved. No token needed.
func (s *Service) ListOwners(ctx context.Context) ([]*OwnerView, error) {
	owners, err := s.store.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	posts, err := s.store.ListPosts(ctx, store.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	byID := indexPosts(posts)
	views := make([]*OwnerView, 0, len(owners))
	for _, o := range owners {
		views = append(views, populateOwner(o, byID))
	}
	return views, nil
}

// GetOwner returns one owner with their posts resolved. Any valid token may
// read any owner.
func (s *Service) GetOwner(ctx context.Context, token, id string) (*OwnerView, error) {
	if _, err := s.authorize(token); err != nil {
		return nil, err
	}
	if err := parseID(id); err != nil {
		return nil, err
	}

	owner, err := s.store.GetOwner(ctx, id)
	if err != nil {
		return nil, mapStoreNotFound(err, "getting owner")
	}

	posts, err := s.store.ListPosts(ctx, store.PostFilter{IDs: owner.PostIDs})
	if err != nil {
		return nil, fmt.Errorf("listing owner posts: %w", err)
	}
	return populateOwner(owner, indexPosts(posts)), nil
}

func indexPosts(posts []*store.Post) map[string]*store.Post {
	byID := make(map[string]*store.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	return byID
}

// populateOwner resolves PostIDs in list order. Ids that no longer resolve
// stay in PostIDs but are left out of Posts.
func populateOwner(o *store.Owner, posts map[string]*store.Post) *OwnerView {
	view := newOwnerView(o)
	view.Posts = make([]PostSummary, 0, len(o.PostIDs))
	for _, id := range o.PostIDs {
		if p, ok := posts[id]; ok {
			view.Posts = append(view.Posts, newPostSummary(p))
		}
	}
	return view
}
