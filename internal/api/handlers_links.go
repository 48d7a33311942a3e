// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"errors"
	"net/http"

	"github.com/skartik/linkvault/internal/database"
	"github.com/skartik/linkvault/internal/metrics"
	"github.com/skartik/linkvault/internal/models"
	ws "github.com/skartik/linkvault/internal/websocket"
)

// ListLinks returns all links, optionally filtered by the search query
// parameter. Search matches case-insensitively against title, description,
// or exact tag membership.
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	links, err := h.db.ListLinks(r.Context(), search)
	if err != nil {
		respondInternalError(w, "list_links", err)
		return
	}

	respondJSON(w, http.StatusOK, links)
}

// CreateLink creates a new link from the request body.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	link := &models.Link{
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		Tags:         req.Tags,
		CollectionID: req.CollectionID,
	}
	if req.IsPublic != nil {
		link.IsPublic = *req.IsPublic
	}

	if err := h.db.CreateLink(r.Context(), link); err != nil {
		respondInternalError(w, "create_link", err)
		return
	}

	metrics.RecordEntityWrite("link", "create")
	h.broadcast(ws.MessageTypeLinkCreated, link)
	respondJSON(w, http.StatusCreated, link)
}

// UpdateLink applies a partial update to an existing link. Only fields
// present in the body change; updatedAt is always refreshed.
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	link, err := h.db.UpdateLink(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrLinkNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "Link not found", nil, nil)
			return
		}
		respondInternalError(w, "update_link", err)
		return
	}

	metrics.RecordEntityWrite("link", "update")
	h.broadcast(ws.MessageTypeLinkUpdated, link)
	respondJSON(w, http.StatusOK, link)
}

// DeleteLink removes a link. Saved references and tag colors are untouched.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteLink(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrLinkNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "Link not found", nil, nil)
			return
		}
		respondInternalError(w, "delete_link", err)
		return
	}

	metrics.RecordEntityWrite("link", "delete")
	h.broadcast(ws.MessageTypeLinkDeleted, map[string]int64{"id": id})
	w.WriteHeader(http.StatusNoContent)
}
