// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package validation

import (
	"strings"
	"testing"

	"github.com/skartik/linkvault/internal/models"
)

func TestValidateCreateLinkRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       models.CreateLinkRequest
		wantError bool
		wantField string
	}{
		{
			name:      "valid",
			req:       models.CreateLinkRequest{Title: "Example", URL: "https://example.com"},
			wantError: false,
		},
		{
			name:      "missing title",
			req:       models.CreateLinkRequest{URL: "https://example.com"},
			wantError: true,
			wantField: "Title",
		},
		{
			name:      "missing url",
			req:       models.CreateLinkRequest{Title: "Example"},
			wantError: true,
			wantField: "URL",
		},
		{
			name:      "missing both",
			req:       models.CreateLinkRequest{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.req)
			if !tt.wantError {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.wantField != "" && err.Errors()[0].Field() != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, err.Errors()[0].Field())
			}
		})
	}
}

func TestValidateCreateUserRequest(t *testing.T) {
	t.Parallel()

	bad := "not-an-email"
	good := "a@example.com"

	if err := ValidateStruct(&models.CreateUserRequest{Name: "Ada", Email: &good}); err != nil {
		t.Errorf("expected valid request, got: %v", err)
	}
	if err := ValidateStruct(&models.CreateUserRequest{Name: "Ada"}); err != nil {
		t.Errorf("email is optional, got: %v", err)
	}
	if err := ValidateStruct(&models.CreateUserRequest{Name: "Ada", Email: &bad}); err == nil {
		t.Error("expected error for malformed email")
	}
	if err := ValidateStruct(&models.CreateUserRequest{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&models.CreateLinkRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "required") {
		t.Errorf("expected message to mention required, got %q", apiErr.Message)
	}
	if apiErr.Details == nil {
		t.Error("expected details for multi-field failure")
	}
}
