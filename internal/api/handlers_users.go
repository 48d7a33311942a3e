// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skartik/linkvault/internal/database"
	"github.com/skartik/linkvault/internal/metrics"
	"github.com/skartik/linkvault/internal/models"
)

// CreateUser creates a new user. IDs are server-generated; a duplicate email
// is a 400, matching the unique constraint.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	// Profiles are public unless the caller opts out.
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		IsPublic: true,
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}

	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			respondError(w, http.StatusBadRequest, errCodeDuplicate, "Email already in use", nil, nil)
			return
		}
		respondInternalError(w, "create_user", err)
		return
	}

	metrics.RecordEntityWrite("user", "create")
	respondJSON(w, http.StatusCreated, user)
}

// GetUser returns a single user by ID.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.db.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "User not found", nil, nil)
			return
		}
		respondInternalError(w, "get_user", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial update to an existing user.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.db.UpdateUser(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUserNotFound):
			respondError(w, http.StatusNotFound, errCodeNotFound, "User not found", nil, nil)
		case errors.Is(err, database.ErrDuplicateEmail):
			respondError(w, http.StatusBadRequest, errCodeDuplicate, "Email already in use", nil, nil)
		default:
			respondInternalError(w, "update_user", err)
		}
		return
	}

	metrics.RecordEntityWrite("user", "update")
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user and all of their saved links in one transaction.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.db.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, errCodeNotFound, "User not found", nil, nil)
			return
		}
		respondInternalError(w, "delete_user", err)
		return
	}

	metrics.RecordEntityWrite("user", "delete")
	w.WriteHeader(http.StatusNoContent)
}

// ListSavedLinks returns a user's saved links with the referenced link and
// its collection projected, newest save first. An unknown user yields an
// empty list, not a 404.
func (h *Handler) ListSavedLinks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	saved, err := h.db.ListSavedLinks(r.Context(), id)
	if err != nil {
		respondInternalError(w, "list_saved_links", err)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

// CreateSavedLink records that a user saved a link. Saving the same link
// twice is a 400, leaving exactly one row in place.
func (h *Handler) CreateSavedLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.CreateSavedLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	saved := &models.SavedLink{
		UserID: id,
		LinkID: req.LinkID,
	}

	if err := h.db.CreateSavedLink(r.Context(), saved); err != nil {
		if errors.Is(err, database.ErrDuplicateSavedLink) {
			respondError(w, http.StatusBadRequest, errCodeDuplicate, "Link already saved", nil, nil)
			return
		}
		respondInternalError(w, "create_saved_link", err)
		return
	}

	metrics.RecordEntityWrite("saved_link", "create")
	respondJSON(w, http.StatusCreated, saved)
}
