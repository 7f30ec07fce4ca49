// ABOUTME: Owner persistence for the SQLite store
// ABOUTME: Usernames are unique; post_ids holds the owner's back-reference list as JSON

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const ownerColumns = `id, username, display_name, password_hash, post_ids, created_at`

// CreateOwner inserts a new owner and assigns its ID.
// Returns ErrDuplicateKey if the username is already taken.
func (s *SQLiteStore) CreateOwner(ctx context.Context, owner *Owner) error {
	if owner.PostIDs == nil {
		owner.PostIDs = []string{}
	}
	postIDs, err := json.Marshal(owner.PostIDs)
	if err != nil {
		return fmt.Errorf("encoding post ids: %w", err)
	}
	if owner.CreatedAt.IsZero() {
		owner.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	id := uuid.NewString()
	query := `
		INSERT INTO owners (id, username, display_name, password_hash, post_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		id,
		owner.Username,
		owner.DisplayName,
		owner.PasswordHash,
		string(postIDs),
		owner.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) && strings.Contains(err.Error(), "owners.username") {
			return ErrDuplicateKey
		}
		return fmt.Errorf("inserting owner: %w", err)
	}

	owner.ID = id
	s.logger.Info("created owner", "id", owner.ID, "username", owner.Username)
	return nil
}

// GetOwner retrieves an owner by ID.
func (s *SQLiteStore) GetOwner(ctx context.Context, id string) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE id = ?`
	owner, err := scanOwner(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying owner: %w", err)
	}
	return owner, nil
}

// GetOwnerByUsername retrieves an owner by username.
func (s *SQLiteStore) GetOwnerByUsername(ctx context.Context, username string) (*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE username = ?`
	owner, err := scanOwner(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("querying owner by username: %w", err)
	}
	return owner, nil
}

// ListOwners returns all owners in insertion order.
func (s *SQLiteStore) ListOwners(ctx context.Context) ([]*Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners ORDER BY seq ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	owners := []*Owner{}
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return owners, nil
}

// SetOwnerPostIDs overwrites the owner's back-reference list.
// This is a plain write: concurrent read-modify-write cycles are last-writer-wins.
func (s *SQLiteStore) SetOwnerPostIDs(ctx context.Context, id string, postIDs []string) error {
	if postIDs == nil {
		postIDs = []string{}
	}
	encoded, err := json.Marshal(postIDs)
	if err != nil {
		return fmt.Errorf("encoding post ids: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `UPDATE owners SET post_ids = ? WHERE id = ?`, string(encoded), id)
	if err != nil {
		return fmt.Errorf("updating owner post ids: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated owner post ids", "id", id, "count", len(postIDs))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (*Owner, error) {
	var owner Owner
	var postIDs, createdAtStr string

	err := row.Scan(
		&owner.ID,
		&owner.Username,
		&owner.DisplayName,
		&owner.PasswordHash,
		&postIDs,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(postIDs), &owner.PostIDs); err != nil {
		return nil, fmt.Errorf("decoding post ids: %w", err)
	}
	if owner.PostIDs == nil {
		owner.PostIDs = []string{}
	}
	owner.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &owner, nil
}
