// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import "net/http"

// ListTagColors returns every tag seen so far with its assigned color,
// ordered by tag name. Colors are assigned once per tag at write time and
// never change.
func (h *Handler) ListTagColors(w http.ResponseWriter, r *http.Request) {
	tags, err := h.db.ListTagColors(r.Context())
	if err != nil {
		respondInternalError(w, "list_tags", err)
		return
	}

	respondJSON(w, http.StatusOK, tags)
}
