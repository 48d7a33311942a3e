// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package models

import "time"

// SavedLink is the join row between a User and a Link. The (UserID, LinkID)
// pair is unique; saving the same link twice is rejected.
type SavedLink struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	LinkID    int64     `json:"linkId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedLinkWithLink is a SavedLink with the referenced Link (and the link's
// collection, when set) projected for display.
type SavedLinkWithLink struct {
	SavedLink
	Link PublicLink `json:"link"`
}

// CreateSavedLinkRequest is the POST /api/users/{id}/saved-links body.
type CreateSavedLinkRequest struct {
	LinkID int64 `json:"linkId" validate:"required"`
}
