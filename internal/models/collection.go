// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package models

import "time"

// DefaultCollectionColor is applied when a collection is created without
// an explicit color token.
const DefaultCollectionColor = "#6366f1"

// Collection groups links under a named, colored bucket.
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CollectionWithCount is a Collection plus the number of links currently
// referencing it, returned by GET /api/collections.
type CollectionWithCount struct {
	Collection
	LinkCount int64 `json:"linkCount"`
}

// CreateCollectionRequest is the POST /api/collections body.
type CreateCollectionRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// UpdateCollectionRequest is the PUT /api/collections/{id} body.
type UpdateCollectionRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}
