// ABOUTME: Aggregate statistics over posts: likes, favorite and top authors
// ABOUTME: Ties for top author are all returned in first-seen order

package blog

import (
	"context"
	"fmt"

	"github.com/2389/bloglist/internal/store"
)

// AuthorPosts is an author with their post count.
type AuthorPosts struct {
	Author string `json:"author"`
	Posts  int    `json:"posts"`
}

// AuthorLikes is an author with the sum of likes across their posts.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Stats summarises every post in the store.
type Stats struct {
	TotalLikes int           `json:"totalLikes"`
	Favorite   *PostSummary  `json:"favorite"`
	MostPosts  []AuthorPosts `json:"mostPosts"`
	MostLikes  []AuthorLikes `json:"mostLikes"`
}

// Stats computes statistics over all posts. No token needed.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	posts, err := s.store.ListPosts(ctx, store.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	stats := &Stats{
		TotalLikes: TotalLikes(posts),
		MostPosts:  MostPostsAuthors(posts),
		MostLikes:  MostLikedAuthors(posts),
	}
	if fav := FavoritePost(posts); fav != nil {
		summary := newPostSummary(fav)
		stats.Favorite = &summary
	}
	return stats, nil
}

func likesOf(p *store.Post) int {
	if p.LikeCount == nil {
		return 0
	}
	return *p.LikeCount
}

// TotalLikes sums likes over posts. Posts without a like count add nothing.
func TotalLikes(posts []*store.Post) int {
	total := 0
	for _, p := range posts {
		total += likesOf(p)
	}
	return total
}

// FavoritePost returns the post with the most likes, or nil for no posts.
// On a tie the later post wins.
func FavoritePost(posts []*store.Post) *store.Post {
	var best *store.Post
	for _, p := range posts {
		if best == nil || likesOf(p) >= likesOf(best) {
			best = p
		}
	}
	return best
}

// authorTally accumulates a per-author value in first-seen order.
type authorTally struct {
	order  []string
	values map[string]int
}

func tallyAuthors(posts []*store.Post, value func(*store.Post) int) authorTally {
	t := authorTally{values: make(map[string]int)}
	for _, p := range posts {
		if p.Author == nil {
			continue
		}
		a := *p.Author
		if _, seen := t.values[a]; !seen {
			t.order = append(t.order, a)
		}
		t.values[a] += value(p)
	}
	return t
}

// leaders returns every author whose value equals the maximum.
func (t authorTally) leaders() []string {
	top := 0
	for i, a := range t.order {
		if i == 0 || t.values[a] > top {
			top = t.values[a]
		}
	}
	var out []string
	for _, a := range t.order {
		if t.values[a] == top {
			out = append(out, a)
		}
	}
	return out
}

// MostPostsAuthors returns the author(s) with the most posts.
func MostPostsAuthors(posts []*store.Post) []AuthorPosts {
	t := tallyAuthors(posts, func(*store.Post) int { return 1 })
	out := []AuthorPosts{}
	for _, a := range t.leaders() {
		out = append(out, AuthorPosts{Author: a, Posts: t.values[a]})
	}
	return out
}

// MostLikedAuthors returns the author(s) with the most likes in total.
func MostLikedAuthors(posts []*store.Post) []AuthorLikes {
	t := tallyAuthors(posts, likesOf)
	out := []AuthorLikes{}
	for _, a := range t.leaders() {
		out = append(out, AuthorLikes{Author: a, Likes: t.values[a]})
	}
	return out
}
