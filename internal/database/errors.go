// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package database

import (
	"errors"
	"io"
)

// Sentinel errors returned by the data access layer. Handlers translate
// these into 404/400 responses; everything else is an internal error.
var (
	ErrLinkNotFound       = errors.New("link not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateSavedLink = errors.New("link already saved by this user")
	ErrDuplicateEmail     = errors.New("a user with this email already exists")
)

// closeQuietly closes a resource ignoring any error. Used during cleanup
// paths where the original error is the one worth reporting.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
