// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

// Package api provides HTTP routing and request handlers for the LinkVault
// REST API, the websocket event endpoint, and the optional echo listener.
//
// Handler methods are split across files by resource:
//   - handlers.go: Handler struct, constructor, websocket upgrade
//   - handlers_helpers.go: shared response and parsing helpers
//   - handlers_links.go: link CRUD
//   - handlers_collections.go: collection CRUD
//   - handlers_public.go: public discovery with search and pagination
//   - handlers_users.go: user CRUD and saved links
//   - handlers_tags.go: tag color listing
//   - handlers_health.go: liveness and health endpoints
//   - echo.go: echo listener served on its own port
//
// Routing uses Chi with middleware from the Chi ecosystem (cors, httprate).
package api
