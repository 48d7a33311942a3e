// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package models

import "time"

// User represents a LinkVault account holder.
//
// IDs are server-generated UUIDv4 strings. Email is optional but unique
// across users when set. Users own their SavedLink rows; deleting a user
// removes those rows in the same transaction.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest is the POST /api/users body. IsPublic defaults to true
// when omitted; the pointer keeps an explicit false distinguishable.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio      *string `json:"bio,omitempty"`
	IsPublic *bool   `json:"isPublic,omitempty"`
}

// UpdateUserRequest is the PUT /api/users/{id} body. All fields are optional;
// only fields present in the body are applied.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio      *string `json:"bio,omitempty"`
	IsPublic *bool   `json:"isPublic,omitempty"`
}
