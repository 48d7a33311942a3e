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

// ListCollections returns all collections with their current link counts.
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.db.ListCollections(r.Context())
	if err != nil {
		respondInternalError(w, "list_collections", err)
		return
	}

	respondJSON(w, http.StatusOK, collections)
}

// CreateCollection creates a new collection. Color defaults server-side when
// omitted.
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCollectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	collection := &models.Collection{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Color != nil {
		collection.Color = *req.Color
	}
	if req.IsPublic != nil {
		collection.IsPublic = *req.IsPublic
	}

	if err := h.db.CreateCollection(r.Context(), collection); err != nil {
		respondInternalError(w, "create_collection", err)
		return
	}

	metrics.RecordEntityWrite("collection", "create")
	h.broadcast(ws.MessageTypeCollectionCreated, collection)
	respondJSON(w, http.StatusCreated, collection)
}

// UpdateCollection applies a partial update to an existing collection.
func (h *Handler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateCollectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	collection, err := h.db.UpdateCollection(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrCollectionNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "Collection not found", nil, nil)
			return
		}
		respondInternalError(w, "update_collection", err)
		return
	}

	metrics.RecordEntityWrite("collection", "update")
	h.broadcast(ws.MessageTypeCollectionUpdated, collection)
	respondJSON(w, http.StatusOK, collection)
}

// DeleteCollection removes a collection. Links keep their collectionId;
// the reference simply stops resolving.
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteCollection(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrCollectionNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "Collection not found", nil, nil)
			return
		}
		respondInternalError(w, "delete_collection", err)
		return
	}

	metrics.RecordEntityWrite("collection", "delete")
	h.broadcast(ws.MessageTypeCollectionDeleted, map[string]int64{"id": id})
	w.WriteHeader(http.StatusNoContent)
}
