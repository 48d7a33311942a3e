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

	"github.com/skartik/linkvault/internal/models"
)

// CreateCollection persists a new collection. ID, timestamps, and the color
// default are assigned here.
func (db *DB) CreateCollection(ctx context.Context, collection *models.Collection) error {
	id, err := db.nextID(ctx, "collections_id_seq")
	if err != nil {
		return err
	}
	collection.ID = id

	now := time.Now().UTC()
	collection.CreatedAt = now
	collection.UpdatedAt = now
	if collection.Color == "" {
		collection.Color = models.DefaultCollectionColor
	}

	query := `INSERT INTO collections (
		id, name, description, color, is_public, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = db.execTimed(ctx, "insert", "collections", query,
		collection.ID, collection.Name, collection.Description,
		collection.Color, collection.IsPublic, collection.CreatedAt, collection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// GetCollection retrieves a collection by ID.
func (db *DB) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	query := `SELECT id, name, description, color, is_public, created_at, updated_at
	FROM collections WHERE id = ?`

	collection, err := scanCollection(db.queryRowTimed(ctx, "select", "collections", query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return collection, nil
}

// ListCollections retrieves all collections with a computed count of the
// links currently referencing each, newest first.
func (db *DB) ListCollections(ctx context.Context) ([]models.CollectionWithCount, error) {
	query := `SELECT
		c.id, c.name, c.description, c.color, c.is_public, c.created_at, c.updated_at,
		COUNT(l.id) AS link_count
	FROM collections c
	LEFT JOIN links l ON l.collection_id = c.id
	GROUP BY c.id, c.name, c.description, c.color, c.is_public, c.created_at, c.updated_at
	ORDER BY c.created_at DESC, c.id DESC`

	rows, err := db.queryTimed(ctx, "select", "collections", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	collections := make([]models.CollectionWithCount, 0)
	for rows.Next() {
		var (
			item        models.CollectionWithCount
			description sql.NullString
		)
		err := rows.Scan(
			&item.ID, &item.Name, &description, &item.Color,
			&item.IsPublic, &item.CreatedAt, &item.UpdatedAt, &item.LinkCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		if description.Valid {
			item.Description = &description.String
		}
		collections = append(collections, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return collections, nil
}

// UpdateCollection applies a partial update and refreshes updated_at.
func (db *DB) UpdateCollection(ctx context.Context, id int64, req *models.UpdateCollectionRequest) (*models.Collection, error) {
	collection, err := db.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		collection.Name = *req.Name
	}
	if req.Description != nil {
		collection.Description = req.Description
	}
	if req.Color != nil {
		collection.Color = *req.Color
	}
	if req.IsPublic != nil {
		collection.IsPublic = *req.IsPublic
	}
	collection.UpdatedAt = time.Now().UTC()

	query := `UPDATE collections SET
		name = ?, description = ?, color = ?, is_public = ?, updated_at = ?
	WHERE id = ?`

	result, err := db.execTimed(ctx, "update", "collections", query,
		collection.Name, collection.Description, collection.Color,
		collection.IsPublic, collection.UpdatedAt, collection.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrCollectionNotFound
	}

	return collection, nil
}

// DeleteCollection removes only the collection row. Links referencing it
// keep their collection_id; the dangling reference is intentional.
func (db *DB) DeleteCollection(ctx context.Context, id int64) error {
	result, err := db.execTimed(ctx, "delete", "collections", `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

// scanCollection scans a full collection row.
func scanCollection(row rowScanner) (*models.Collection, error) {
	var (
		collection  models.Collection
		description sql.NullString
	)

	err := row.Scan(
		&collection.ID, &collection.Name, &description, &collection.Color,
		&collection.IsPublic, &collection.CreatedAt, &collection.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		collection.Description = &description.String
	}
	return &collection, nil
}
