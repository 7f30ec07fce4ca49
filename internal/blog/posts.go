// ABOUTME: Post operations and the owner back-reference bookkeeping
// ABOUTME: Create writes the post then the owner; delete removes the post then updates the owner

package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/bloglist/internal/store"
)

// ListPosts returns every post with its owner summary. No token needed.
func (s *Service) ListPosts(ctx context.Context) ([]*PostView, error) {
	posts, err := s.store.ListPosts(ctx, store.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	owners, err := s.store.ListOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}

	byID := make(map[string]*store.Owner, len(owners))
	for _, o := range owners {
		byID[o.ID] = o
	}

	views := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		view := newPostView(p)
		if p.OwnerID != nil {
			if o, ok := byID[*p.OwnerID]; ok {
				view.Owner = newOwnerSummary(o)
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GetPost returns one post. No token needed.
func (s *Service) GetPost(ctx context.Context, id string) (*PostView, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, mapStoreNotFound(err, "getting post")
	}
	return newPostView(post), nil
}

// CreatePost stores a post for the token's owner and appends it to the
// owner's post list. If the second write fails the post stays stored and
// ErrBackReferenceSync is returned.
func (s *Service) CreatePost(ctx context.Context, token string, in PostInput) (*PostView, error) {
	if err := requirePostBasics(in); err != nil {
		return nil, err
	}
	if in.LikeCount == nil {
		zero := 0
		in.LikeCount = &zero
	}

	identity, err := s.authorize(token)
	if err != nil {
		return nil, err
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	owner, err := s.store.GetOwner(ctx, identity.OwnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Signed for an owner that no longer exists
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("getting owner: %w", err)
	}

	ownerID := owner.ID
	post := &store.Post{
		Title:     in.Title,
		Author:    in.Author,
		URL:       in.URL,
		LikeCount: in.LikeCount,
		OwnerID:   &ownerID,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	postIDs := append(append([]string{}, owner.PostIDs...), post.ID)
	if err := s.store.SetOwnerPostIDs(ctx, owner.ID, postIDs); err != nil {
		s.metrics.RecordBackReferenceFailure("create_post")
		s.logger.Error("post created but owner post list not updated",
			"post_id", post.ID, "owner_id", owner.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBackReferenceSync, err)
	}

	s.metrics.RecordPostCreated()
	s.logger.Info("post created", "post_id", post.ID, "owner_id", owner.ID)
	return newPostView(post), nil
}

// UpdatePost overwrites a post's content fields. Only the owner may do this.
// Fields missing from in become absent on the stored post.
func (s *Service) UpdatePost(ctx context.Context, token, id string, in PostInput) (*PostView, error) {
	identity, err := s.authorize(token)
	if err != nil {
		return nil, err
	}
	if err := parseID(id); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, mapStoreNotFound(err, "getting post")
	}
	if !ownedBy(post, identity.OwnerID) {
		return nil, ErrForbidden
	}

	updated, err := s.store.ReplacePostFields(ctx, id, in.fields())
	if err != nil {
		return nil, mapStoreNotFound(err, "updating post")
	}

	s.logger.Info("post updated", "post_id", id, "owner_id", identity.OwnerID)
	return newPostView(updated), nil
}

// LikePost overwrites a post's content fields without any token. Anyone may
// call it; this is how likes are recorded.
func (s *Service) LikePost(ctx context.Context, id string, in PostInput) (*PostView, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}

	updated, err := s.store.ReplacePostFields(ctx, id, in.fields())
	if err != nil {
		return nil, mapStoreNotFound(err, "updating post")
	}

	s.metrics.RecordPostLiked()
	return newPostView(updated), nil
}

// DeletePost removes a post and then removes it from its owner's post list.
// If the second write fails the post stays deleted and
// ErrBackReferenceSync is returned.
func (s *Service) DeletePost(ctx context.Context, token, id string) error {
	identity, err := s.authorize(token)
	if err != nil {
		return err
	}
	if err := parseID(id); err != nil {
		return err
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return mapStoreNotFound(err, "getting post")
	}
	if !ownedBy(post, identity.OwnerID) {
		return ErrForbidden
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return mapStoreNotFound(err, "deleting post")
	}

	ownerID := *post.OwnerID
	if err := s.removeFromOwner(ctx, ownerID, id); err != nil {
		s.metrics.RecordBackReferenceFailure("delete_post")
		s.logger.Error("post deleted but owner post list not updated",
			"post_id", id, "owner_id", ownerID, "error", err)
		return fmt.Errorf("%w: %w", ErrBackReferenceSync, err)
	}

	s.metrics.RecordPostDeleted()
	s.logger.Info("post deleted", "post_id", id, "owner_id", ownerID)
	return nil
}

func (s *Service) removeFromOwner(ctx context.Context, ownerID, postID string) error {
	owner, err := s.store.GetOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("getting owner: %w", err)
	}

	kept := make([]string, 0, len(owner.PostIDs))
	for _, pid := range owner.PostIDs {
		if pid != postID {
			kept = append(kept, pid)
		}
	}
	if err := s.store.SetOwnerPostIDs(ctx, ownerID, kept); err != nil {
		return fmt.Errorf("saving owner: %w", err)
	}
	return nil
}

// ownedBy compares the post's owner with the token subject. A post without
// an owner belongs to nobody.
func ownedBy(p *store.Post, ownerID string) bool {
	return p.OwnerID != nil && *p.OwnerID == ownerID
}
