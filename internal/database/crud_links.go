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
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/skartik/linkvault/internal/models"
)

// CreateLink persists a new link. The ID, timestamps, and tag defaults are
// assigned here; the caller provides the validated payload.
func (db *DB) CreateLink(ctx context.Context, link *models.Link) error {
	id, err := db.nextID(ctx, "links_id_seq")
	if err != nil {
		return err
	}
	link.ID = id

	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now
	if link.Tags == nil {
		link.Tags = []string{}
	}

	tagsJSON, err := encodeTags(link.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO links (
		id, title, url, description, tags, is_public, collection_id, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = db.execTimed(ctx, "insert", "links", query,
		link.ID, link.Title, link.URL, link.Description, tagsJSON,
		link.IsPublic, link.CollectionID, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}

	return db.ensureTagColors(ctx, link.Tags)
}

// GetLink retrieves a link by ID.
func (db *DB) GetLink(ctx context.Context, id int64) (*models.Link, error) {
	query := `SELECT id, title, url, description, tags, is_public, collection_id, created_at, updated_at
	FROM links WHERE id = ?`

	link, err := scanLink(db.queryRowTimed(ctx, "select", "links", query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return link, nil
}

// ListLinks retrieves all links, newest first. When search is non-empty it
// matches case-insensitively against title, description, or exact membership
// in the tags set (OR semantics).
func (db *DB) ListLinks(ctx context.Context, search string) ([]models.Link, error) {
	query := `SELECT l.id, l.title, l.url, l.description, l.tags, l.is_public, l.collection_id, l.created_at, l.updated_at
	FROM links l`

	args := []any{}
	if search != "" {
		clause, clauseArgs := searchClause(search)
		query += " WHERE " + clause
		args = append(args, clauseArgs...)
	}
	query += " ORDER BY l.created_at DESC, l.id DESC"

	rows, err := db.queryTimed(ctx, "select", "links", query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	links := make([]models.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return links, nil
}

// ListPublicLinks retrieves one page of public links with their parent
// collection projected, plus the total count of the filtered set.
// Ordering matches ListLinks so concatenating pages reproduces the full
// result set without duplicates or omissions.
func (db *DB) ListPublicLinks(ctx context.Context, search string, page, limit int) ([]models.PublicLink, int64, error) {
	where := "l.is_public = true"
	args := []any{}
	if search != "" {
		clause, clauseArgs := searchClause(search)
		where += " AND " + clause
		args = append(args, clauseArgs...)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM links l WHERE " + where
	if err := db.queryRowTimed(ctx, "count", "links", countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count public links: %w", err)
	}

	query := `SELECT
		l.id, l.title, l.url, l.description, l.tags, l.is_public, l.collection_id,
		l.created_at, l.updated_at, c.name, c.color
	FROM links l
	LEFT JOIN collections c ON c.id = l.collection_id
	WHERE ` + where + `
	ORDER BY l.created_at DESC, l.id DESC
	LIMIT ? OFFSET ?`

	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := db.queryTimed(ctx, "select", "links", query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list public links: %w", err)
	}
	defer rows.Close()

	links := make([]models.PublicLink, 0, limit)
	for rows.Next() {
		var (
			link            models.Link
			description     sql.NullString
			tagsJSON        string
			collectionID    sql.NullInt64
			collectionName  sql.NullString
			collectionColor sql.NullString
		)
		err := rows.Scan(
			&link.ID, &link.Title, &link.URL, &description, &tagsJSON,
			&link.IsPublic, &collectionID, &link.CreatedAt, &link.UpdatedAt,
			&collectionName, &collectionColor,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan public link: %w", err)
		}

		applyLinkNullables(&link, description, tagsJSON, collectionID)

		public := models.PublicLink{Link: link}
		if collectionName.Valid {
			public.Collection = &models.CollectionRef{
				Name:  collectionName.String,
				Color: collectionColor.String,
			}
		}
		links = append(links, public)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating public links: %w", err)
	}

	return links, total, nil
}

// UpdateLink applies a partial update: only fields present in the request
// change, and updated_at is always refreshed. Returns the updated link.
func (db *DB) UpdateLink(ctx context.Context, id int64, req *models.UpdateLinkRequest) (*models.Link, error) {
	link, err := db.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Description != nil {
		link.Description = req.Description
	}
	if req.Tags != nil {
		link.Tags = *req.Tags
		if link.Tags == nil {
			link.Tags = []string{}
		}
	}
	if req.IsPublic != nil {
		link.IsPublic = *req.IsPublic
	}
	if req.CollectionID != nil {
		link.CollectionID = req.CollectionID
	}
	link.UpdatedAt = time.Now().UTC()

	tagsJSON, err := encodeTags(link.Tags)
	if err != nil {
		return nil, err
	}

	query := `UPDATE links SET
		title = ?, url = ?, description = ?, tags = ?, is_public = ?,
		collection_id = ?, updated_at = ?
	WHERE id = ?`

	result, err := db.execTimed(ctx, "update", "links", query,
		link.Title, link.URL, link.Description, tagsJSON, link.IsPublic,
		link.CollectionID, link.UpdatedAt, link.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrLinkNotFound
	}

	if err := db.ensureTagColors(ctx, link.Tags); err != nil {
		return nil, err
	}

	return link, nil
}

// DeleteLink permanently removes a link.
func (db *DB) DeleteLink(ctx context.Context, id int64) error {
	result, err := db.execTimed(ctx, "delete", "links", `DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// rowScanner abstracts over *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanLink scans a full link row.
func scanLink(row rowScanner) (*models.Link, error) {
	var (
		link         models.Link
		description  sql.NullString
		tagsJSON     string
		collectionID sql.NullInt64
	)

	err := row.Scan(
		&link.ID, &link.Title, &link.URL, &description, &tagsJSON,
		&link.IsPublic, &collectionID, &link.CreatedAt, &link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	applyLinkNullables(&link, description, tagsJSON, collectionID)
	return &link, nil
}

// applyLinkNullables moves nullable column values onto the model.
func applyLinkNullables(link *models.Link, description sql.NullString, tagsJSON string, collectionID sql.NullInt64) {
	if description.Valid {
		link.Description = &description.String
	}
	if collectionID.Valid {
		link.CollectionID = &collectionID.Int64
	}
	link.Tags = decodeTags(tagsJSON)
}

// encodeTags serializes a tag list as a JSON array string for storage.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

// decodeTags parses the stored JSON array. Malformed values degrade to an
// empty list rather than failing the whole read.
func decodeTags(tagsJSON string) []string {
	if tagsJSON == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// searchClause builds the shared search filter: case-insensitive substring
// match on title or description, or exact membership in the tags set. Tag
// membership matches the quoted element inside the stored JSON array, which
// is exact because elements are JSON-quoted.
func searchClause(search string) (string, []any) {
	term := strings.ToLower(search)
	escaped := escapeLike(term)

	clause := `(LOWER(l.title) LIKE ? ESCAPE '\' OR ` +
		`LOWER(COALESCE(l.description, '')) LIKE ? ESCAPE '\' OR ` +
		`LOWER(l.tags) LIKE ? ESCAPE '\')`

	substring := "%" + escaped + "%"
	tagMember := `%"` + escaped + `"%`
	return clause, []any{substring, substring, tagMember}
}

// escapeLike escapes LIKE wildcards in user-supplied search terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
