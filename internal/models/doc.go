// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

// Package models defines the core data types shared between the API layer
// and the database layer: users, links, collections, saved links, tag colors,
// and the structured API error envelope.
package models
