// ABOUTME: Request inputs and response views for owners and posts
// ABOUTME: Views never carry the password hash and always expose ids as "id"

package blog

import (
	"github.com/2389/bloglist/internal/store"
)

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username             string `json:"username" validate:"required,min=5,max=15"`
	DisplayName          string `json:"displayName" validate:"omitempty,min=5,max=20"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PostInput carries the four content fields of a post. A nil field is absent.
type PostInput struct {
	Title     *string `json:"title" validate:"required,min=5,max=20"`
	Author    *string `json:"author" validate:"omitempty,min=5,max=20"`
	URL       *string `json:"url" validate:"required,min=5,max=80"`
	LikeCount *int    `json:"likeCount" validate:"omitempty,min=0"`
}

func (in PostInput) fields() store.PostFields {
	return store.PostFields{
		Title:     in.Title,
		Author:    in.Author,
		URL:       in.URL,
		LikeCount: in.LikeCount,
	}
}

// LoginResult is returned by a successful Authenticate.
type LoginResult struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	OwnerID     string `json:"ownerId"`
}

// OwnerSummary is the owner as embedded in a post listing.
type OwnerSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// PostSummary is a post as embedded in an owner listing.
type PostSummary struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	URL       *string `json:"url,omitempty"`
	LikeCount *int    `json:"likeCount,omitempty"`
}

// PostView is the serialized form of a post.
type PostView struct {
	ID        string        `json:"id"`
	Title     *string       `json:"title,omitempty"`
	Author    *string       `json:"author,omitempty"`
	URL       *string       `json:"url,omitempty"`
	LikeCount *int          `json:"likeCount,omitempty"`
	OwnerID   *string       `json:"ownerId,omitempty"`
	Owner     *OwnerSummary `json:"owner,omitempty"`
}

// OwnerView is the serialized form of an owner.
type OwnerView struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"displayName"`
	PostIDs     []string      `json:"postIds"`
	Posts       []PostSummary `json:"posts,omitempty"`
}

func newPostView(p *store.Post) *PostView {
	return &PostView{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		URL:       p.URL,
		LikeCount: p.LikeCount,
		OwnerID:   p.OwnerID,
	}
}

func newPostSummary(p *store.Post) PostSummary {
	return PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		URL:       p.URL,
		LikeCount: p.LikeCount,
	}
}

func newOwnerSummary(o *store.Owner) *OwnerSummary {
	return &OwnerSummary{
		ID:          o.ID,
		Username:    o.Username,
		DisplayName: o.DisplayName,
	}
}

func newOwnerView(o *store.Owner) *OwnerView {
	postIDs := o.PostIDs
	if postIDs == nil {
		postIDs = []string{}
	}
	return &OwnerView{
		ID:          o.ID,
		Username:    o.Username,
		DisplayName: o.DisplayName,
		PostIDs:     postIDs,
	}
}
