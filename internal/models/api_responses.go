// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package models

import "time"

// APIError represents a structured error response body.
// Provides a consistent error format across all API endpoints so any client
// can surface failures instead of silently swallowing them.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters or missing required fields
//   - NOT_FOUND: Resource doesn't exist
//   - DUPLICATE: Unique constraint violated (saved link, email)
//   - METHOD_NOT_ALLOWED: Matched route, unsupported method
//   - INTERNAL_ERROR: Unexpected failure, detail logged server-side only
//
// Example:
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "title and url are required",
//	  "details": {"field": "title"}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope written for every non-2xx response.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// HealthStatus is the GET /api/health response body.
type HealthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
}
