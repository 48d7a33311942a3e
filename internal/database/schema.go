// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements are executed in order at startup. All statements are
// idempotent so repeated startups against an existing file are safe.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS links_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS collections_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS saved_links_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		email VARCHAR UNIQUE,
		bio VARCHAR,
		is_public BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS collections (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR,
		color VARCHAR NOT NULL,
		is_public BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	// tags holds a JSON-encoded array of strings, defaulting to [].
	// collection_id is a weak reference: no FK, deleting a collection
	// leaves the value dangling.
	`CREATE TABLE IF NOT EXISTS links (
		id BIGINT PRIMARY KEY,
		title VARCHAR NOT NULL,
		url VARCHAR NOT NULL,
		description VARCHAR,
		tags VARCHAR NOT NULL DEFAULT '[]',
		is_public BOOLEAN NOT NULL DEFAULT false,
		collection_id BIGINT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS saved_links (
		id BIGINT PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		link_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, link_id)
	)`,

	`CREATE TABLE IF NOT EXISTS tag_colors (
		tag VARCHAR PRIMARY KEY,
		color VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// createSchema creates sequences and tables if they do not exist yet.
func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// nextID draws the next value from a sequence. Integer IDs are assigned
// explicitly at insert time rather than via column defaults so the caller
// knows the ID without a second round trip.
func (db *DB) nextID(ctx context.Context, sequence string) (int64, error) {
	var id int64
	query := fmt.Sprintf("SELECT nextval('%s')", sequence)
	if err := db.conn.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get next id from %s: %w", sequence, err)
	}
	return id, nil
}
