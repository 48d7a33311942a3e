// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package models

import "time"

// Link represents a saved bookmark.
//
// Tags default to an empty sequence, never null, so JSON consumers can
// iterate without nil checks. CollectionID is a weak reference: deleting
// a collection leaves its links' CollectionID values dangling on purpose.
type Link struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Description  *string   `json:"description,omitempty"`
	Tags         []string  `json:"tags"`
	IsPublic     bool      `json:"isPublic"`
	CollectionID *int64    `json:"collectionId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateLinkRequest is the POST /api/links body.
type CreateLinkRequest struct {
	Title        string   `json:"title" validate:"required"`
	URL          string   `json:"url" validate:"required"`
	Description  *string  `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	IsPublic     *bool    `json:"isPublic,omitempty"`
	CollectionID *int64   `json:"collectionId,omitempty"`
}

// UpdateLinkRequest is the PUT /api/links/{id} body. All fields are optional;
// only fields present in the body are applied, and updatedAt is always
// refreshed.
type UpdateLinkRequest struct {
	Title        *string   `json:"title,omitempty"`
	URL          *string   `json:"url,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	IsPublic     *bool     `json:"isPublic,omitempty"`
	CollectionID *int64    `json:"collectionId,omitempty"`
}

// CollectionRef is the collection projection attached to public links,
// enough for a client to render the collection badge.
type CollectionRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PublicLink is a Link with its parent collection projected for display.
type PublicLink struct {
	Link
	Collection *CollectionRef `json:"collection,omitempty"`
}

// PaginationInfo describes one page of a paginated result set.
// Pages is always ceil(Total / Limit).
type PaginationInfo struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// PublicLinksResponse is the GET /api/public/links response body.
type PublicLinksResponse struct {
	Links      []PublicLink   `json:"links"`
	Pagination PaginationInfo `json:"pagination"`
}
