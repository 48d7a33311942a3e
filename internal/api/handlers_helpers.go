// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/skartik/linkvault/internal/logging"
	"github.com/skartik/linkvault/internal/models"
	"github.com/skartik/linkvault/internal/validation"
)

// Error codes used in structured error bodies.
const (
	errCodeValidation       = "VALIDATION_ERROR"
	errCodeNotFound         = "NOT_FOUND"
	errCodeDuplicate        = "DUPLICATE"
	errCodeBadRequest       = "BAD_REQUEST"
	errCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	errCodeInternal         = "INTERNAL_ERROR"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection. Newlines and other control characters would let a caller forge
// log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends a structured error body. Internal detail from err is
// logged but never leaked to the client; message is what the caller sees.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Error().Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	respondJSON(w, status, &models.ErrorResponse{
		Error: models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondInternalError logs the failure with endpoint context and returns a
// generic 500 body.
func respondInternalError(w http.ResponseWriter, endpoint string, err error) {
	logging.Error().Err(err).Str("endpoint", endpoint).Msg("Internal error")
	respondError(w, http.StatusInternalServerError, errCodeInternal, "An internal error occurred", nil, nil)
}

// decodeJSON decodes the request body into v, rejecting malformed JSON with
// a 400. Returns false when a response was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, errCodeBadRequest, "Invalid JSON body", nil, err)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator and writes
// a 400 with field details on failure. Returns false when a response was
// already written.
func validateRequest(w http.ResponseWriter, v interface{}) bool {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return true
	}

	apiErr := validationErr.ToAPIError()
	respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
	return false
}

// idParam parses the {id} URL parameter as an int64. Writes a 400 and
// returns false on a non-numeric id.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeBadRequest, "Invalid id parameter", nil, nil)
		return 0, false
	}
	return id, true
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}
