// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/skartik/linkvault/internal/models"
)

// ensureTagColors assigns a palette color to every tag not seen before.
// Assignment happens once, at write time, so a tag's color never changes
// no matter how often it is read.
func (db *DB) ensureTagColors(ctx context.Context, tags []string) error {
	for _, tag := range tags {
		if tag == "" {
			continue
		}

		var exists int64
		err := db.queryRowTimed(ctx, "count", "tag_colors",
			`SELECT COUNT(*) FROM tag_colors WHERE tag = ?`, tag,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check tag color: %w", err)
		}
		if exists > 0 {
			continue
		}

		var assigned int64
		err = db.queryRowTimed(ctx, "count", "tag_colors", `SELECT COUNT(*) FROM tag_colors`).Scan(&assigned)
		if err != nil {
			return fmt.Errorf("failed to count tag colors: %w", err)
		}

		color := models.TagColorPalette[assigned%int64(len(models.TagColorPalette))]
		_, err = db.execTimed(ctx, "insert", "tag_colors",
			`INSERT INTO tag_colors (tag, color, created_at) VALUES (?, ?, ?)`,
			tag, color, time.Now().UTC(),
		)
		if err != nil {
			// Lost a race with a concurrent write for the same tag; the
			// existing assignment wins.
			if isUniqueConstraintError(err) {
				continue
			}
			return fmt.Errorf("failed to assign tag color: %w", err)
		}
	}
	return nil
}

// ListTagColors retrieves all persisted tag color assignments,
// alphabetically by tag.
func (db *DB) ListTagColors(ctx context.Context) ([]models.TagColor, error) {
	rows, err := db.queryTimed(ctx, "select", "tag_colors",
		`SELECT tag, color, created_at FROM tag_colors ORDER BY tag ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag colors: %w", err)
	}
	defer rows.Close()

	colors := make([]models.TagColor, 0)
	for rows.Next() {
		var tc models.TagColor
		if err := rows.Scan(&tc.Tag, &tc.Color, &tc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag color: %w", err)
		}
		colors = append(colors, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag colors: %w", err)
	}

	return colors, nil
}
