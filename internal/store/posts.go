// ABOUTME: Post persistence for the SQLite store
// ABOUTME: Content columns are nullable so wholesale overwrites can clear them

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const postColumns = `id, title, author, url, like_count, owner_id, created_at`

// CreatePost inserts a new post and assigns its ID.
func (s *SQLiteStore) CreatePost(ctx context.Context, post *Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO posts (id, title, author, url, like_count, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		id,
		post.Title,
		post.Author,
		post.URL,
		post.LikeCount,
		post.OwnerID,
		post.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	post.ID = id
	s.logger.Debug("created post", "id", post.ID)
	return nil
}

// GetPost retrieves a post by ID.
func (s *SQLiteStore) GetPost(ctx context.Context, id string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying post: %w", err)
	}
	return post, nil
}

// ListPosts returns posts matching the filter in insertion order.
func (s *SQLiteStore) ListPosts(ctx context.Context, filter PostFilter) ([]*Post, error) {
	posts := []*Post{}
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return posts, nil
	}

	var conditions []string
	var args []any
	if filter.OwnerID != "" {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.IDs != nil {
		placeholders := make([]string, len(filter.IDs))
		for i, id := range filter.IDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions, "id IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

// ReplacePostFields overwrites title, author, url and like count wholesale
// and returns the updated post. Nil fields become NULL.
func (s *SQLiteStore) ReplacePostFields(ctx context.Context, id string, fields PostFields) (*Post, error) {
	query := `
		UPDATE posts
		SET title = ?, author = ?, url = ?, like_count = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		fields.Title,
		fields.Author,
		fields.URL,
		fields.LikeCount,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return s.GetPost(ctx, id)
}

// DeletePost removes a post by ID.
func (s *SQLiteStore) DeletePost(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted post", "id", id)
	return nil
}

func scanPost(row rowScanner) (*Post, error) {
	var post Post
	var title, author, url, ownerID sql.NullString
	var likeCount sql.NullInt64
	var createdAtStr string

	err := row.Scan(
		&post.ID,
		&title,
		&author,
		&url,
		&likeCount,
		&ownerID,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	post.Title = nullableString(title)
	post.Author = nullableString(author)
	post.URL = nullableString(url)
	post.OwnerID = nullableString(ownerID)
	if likeCount.Valid {
		n := int(likeCount.Int64)
		post.LikeCount = &n
	}
	post.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &post, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
