// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skartik/linkvault/internal/models"
)

// CreateUser persists a new user. IDs are UUIDv4 strings generated here,
// never client-supplied, so concurrent creations cannot collide.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (
		id, name, email, bio, is_public, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := db.execTimed(ctx, "insert", "users", query,
		user.ID, user.Name, user.Email, user.Bio,
		user.IsPublic, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, name, email, bio, is_public, created_at, updated_at
	FROM users WHERE id = ?`

	user, err := scanUser(db.queryRowTimed(ctx, "select", "users", query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update and refreshes updated_at.
func (db *DB) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := db.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}
	user.UpdatedAt = time.Now().UTC()

	query := `UPDATE users SET
		name = ?, email = ?, bio = ?, is_public = ?, updated_at = ?
	WHERE id = ?`

	result, err := db.execTimed(ctx, "update", "users", query,
		user.Name, user.Email, user.Bio, user.IsPublic, user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// DeleteUser removes the user's saved links and the user row in one
// transaction, so a mid-sequence failure cannot leave orphaned rows.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_links WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete saved links for user: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}

	return nil
}

// scanUser scans a full user row.
func scanUser(row rowScanner) (*models.User, error) {
	var (
		user  models.User
		email sql.NullString
		bio   sql.NullString
	)

	err := row.Scan(
		&user.ID, &user.Name, &email, &bio,
		&user.IsPublic, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	if bio.Valid {
		user.Bio = &bio.String
	}
	return &user, nil
}
