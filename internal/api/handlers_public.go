// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"net/http"

	"github.com/skartik/linkvault/internal/models"
)

// PublicLinks returns the paginated public link feed. Only links with
// isPublic set appear; each carries its collection's name and color when the
// collection still exists. Page defaults to 1, limit to the configured
// default (capped at the configured max).
func (h *Handler) PublicLinks(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	page := getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}

	limit := getIntParam(r, "limit", h.config.API.DefaultPageSize)
	if limit < 1 {
		limit = h.config.API.DefaultPageSize
	}
	if limit > h.config.API.MaxPageSize {
		limit = h.config.API.MaxPageSize
	}

	links, total, err := h.db.ListPublicLinks(r.Context(), search, page, limit)
	if err != nil {
		respondInternalError(w, "public_links", err)
		return
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	respondJSON(w, http.StatusOK, &models.PublicLinksResponse{
		Links: links,
		Pagination: models.PaginationInfo{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}
