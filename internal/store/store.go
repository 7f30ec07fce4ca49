// ABOUTME: Store interface and entity types for bloglist persistence
// ABOUTME: Defines Owner and Post documents and CRUD-by-id operations over them

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when an insert violates the unique username constraint
var ErrDuplicateKey = errors.New("duplicate key")

// Owner is a registered user who authors posts.
// PostIDs is the reverse index of posts whose OwnerID equals ID.
type Owner struct {
	ID           string
	Username     string
	DisplayName  string
	PasswordHash string // bcrypt hash, never serialized outward
	PostIDs      []string
	CreatedAt    time.Time
}

// Post is a blog post. Content fields are nullable because an overwrite
// replaces them wholesale and may leave them absent.
type Post struct {
	ID        string
	Title     *string
	Author    *string
	URL       *string
	LikeCount *int
	OwnerID   *string // nil for posts created without an owner
	CreatedAt time.Time
}

// PostFields is the set of post fields replaced by an update.
// A nil field is stored as absent.
type PostFields struct {
	Title     *string
	Author    *string
	URL       *string
	LikeCount *int
}

// PostFilter narrows ListPosts. Zero value matches every post.
type PostFilter struct {
	OwnerID string   // only posts owned by this owner
	IDs     []string // only these post ids, when non-nil
}

// Store defines the persistence operations over owners and posts.
// Results are returned in insertion order.
type Store interface {
	// Owners
	CreateOwner(ctx context.Context, owner *Owner) error
	GetOwner(ctx context.Context, id string) (*Owner, error)
	GetOwnerByUsername(ctx context.Context, username string) (*Owner, error)
	ListOwners(ctx context.Context) ([]*Owner, error)
	SetOwnerPostIDs(ctx context.Context, id string, postIDs []string) error

	// Posts
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]*Post, error)
	ReplacePostFields(ctx context.Context, id string, fields PostFields) (*Post, error)
	DeletePost(ctx context.Context, id string) error

	// Reset deletes every post and owner
	Reset(ctx context.Context) error

	// Close releases any resources held by the store
	Close() error
}

// Fields returns the replaceable fields of the post.
func (p *Post) Fields() PostFields {
	return PostFields{
		Title:     p.Title,
		Author:    p.Author,
		URL:       p.URL,
		LikeCount: p.LikeCount,
	}
}

// HasPost reports whether postID is in the owner's back-reference list.
func (o *Owner) HasPost(postID string) bool {
	for _, id := range o.PostIDs {
		if id == postID {
			return true
		}
	}
	return false
}
