// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skartik/linkvault/internal/models"
)

// CreateSavedLink records that a user saved a link. The (user_id, link_id)
// pair is unique; a second save of the same link returns
// ErrDuplicateSavedLink and leaves exactly one row in place.
func (db *DB) CreateSavedLink(ctx context.Context, saved *models.SavedLink) error {
	id, err := db.nextID(ctx, "saved_links_id_seq")
	if err != nil {
		return err
	}
	saved.ID = id
	saved.CreatedAt = time.Now().UTC()

	query := `INSERT INTO saved_links (id, user_id, link_id, created_at)
	VALUES (?, ?, ?, ?)`

	_, err = db.execTimed(ctx, "insert", "saved_links", query,
		saved.ID, saved.UserID, saved.LinkID, saved.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateSavedLink
		}
		return fmt.Errorf("failed to create saved link: %w", err)
	}

	return nil
}

// ListSavedLinks retrieves a user's saved links with the referenced link and
// the link's collection projected for display, newest save first.
func (db *DB) ListSavedLinks(ctx context.Context, userID string) ([]models.SavedLinkWithLink, error) {
	query := `SELECT
		s.id, s.user_id, s.link_id, s.created_at,
		l.id, l.title, l.url, l.description, l.tags, l.is_public, l.collection_id,
		l.created_at, l.updated_at, c.name, c.color
	FROM saved_links s
	JOIN links l ON l.id = s.link_id
	LEFT JOIN collections c ON c.id = l.collection_id
	WHERE s.user_id = ?
	ORDER BY s.created_at DESC, s.id DESC`

	rows, err := db.queryTimed(ctx, "select", "saved_links", query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved links: %w", err)
	}
	defer rows.Close()

	saved := make([]models.SavedLinkWithLink, 0)
	for rows.Next() {
		var (
			item            models.SavedLinkWithLink
			link            models.Link
			description     sql.NullString
			tagsJSON        string
			collectionID    sql.NullInt64
			collectionName  sql.NullString
			collectionColor sql.NullString
		)
		err := rows.Scan(
			&item.ID, &item.UserID, &item.LinkID, &item.CreatedAt,
			&link.ID, &link.Title, &link.URL, &description, &tagsJSON,
			&link.IsPublic, &collectionID, &link.CreatedAt, &link.UpdatedAt,
			&collectionName, &collectionColor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved link: %w", err)
		}

		applyLinkNullables(&link, description, tagsJSON, collectionID)

		item.Link = models.PublicLink{Link: link}
		if collectionName.Valid {
			item.Link.Collection = &models.CollectionRef{
				Name:  collectionName.String,
				Color: collectionColor.String,
			}
		}
		saved = append(saved, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved links: %w", err)
	}

	return saved, nil
}

// CountSavedLinks returns the number of saved-link rows for a user.
func (db *DB) CountSavedLinks(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := db.queryRowTimed(ctx, "count", "saved_links",
		`SELECT COUNT(*) FROM saved_links WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count saved links: %w", err)
	}
	return count, nil
}
