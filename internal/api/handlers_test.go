// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/skartik/linkvault/internal/config"
	"github.com/skartik/linkvault/internal/database"
	"github.com/skartik/linkvault/internal/logging"
	"github.com/skartik/linkvault/internal/models"
	ws "github.com/skartik/linkvault/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "console",
		Output: io.Discard,
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			Host:        "127.0.0.1",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

// newTestHandler creates a handler backed by a temp-dir DuckDB and a running
// websocket hub.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:      t.TempDir() + "/test.duckdb",
		MaxMemory: "256MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	hub := ws.NewHub()
	go hub.Run()

	return NewHandler(db, testConfig(), hub)
}

// newTestRouter creates a full router over a fresh handler.
func newTestRouter(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	h := newTestHandler(t)
	router := NewRouter(h, NewChiMiddlewareFromConfig(&h.config.Security))
	return h, router.SetupChi()
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out when non-nil.
func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

// decodeError unmarshals a structured error body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func createLink(t *testing.T, handler http.Handler, req models.CreateLinkRequest) models.Link {
	t.Helper()
	var link models.Link
	rec := doJSON(t, handler, http.MethodPost, "/api/links", req, &link)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create link status = %d, body %s", rec.Code, rec.Body.String())
	}
	return link
}

func TestCreateLink(t *testing.T) {
	_, handler := newTestRouter(t)

	isPublic := true
	desc := "The Go programming language blog"
	link := createLink(t, handler, models.CreateLinkRequest{
		Title:       "Go Blog",
		URL:         "https://go.dev/blog",
		Description: &desc,
		Tags:        []string{"go", "programming"},
		IsPublic:    &isPublic,
	})

	if link.ID == 0 {
		t.Error("Expected non-zero id")
	}
	if link.Title != "Go Blog" || link.URL != "https://go.dev/blog" {
		t.Errorf("Unexpected link %+v", link)
	}
	if !link.IsPublic {
		t.Error("Expected public link")
	}
	if len(link.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 entries", link.Tags)
	}
	if link.CreatedAt.IsZero() || link.UpdatedAt.IsZero() {
		t.Error("Expected server-set timestamps")
	}
}

func TestCreateLinkValidation(t *testing.T) {
	_, handler := newTestRouter(t)

	tests := []struct {
		name string
		body models.CreateLinkRequest
	}{
		{"missing title", models.CreateLinkRequest{URL: "https://example.com"}},
		{"missing url", models.CreateLinkRequest{Title: "Example"}},
		{"missing both", models.CreateLinkRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/api/links", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want 400", rec.Code)
			}
			resp := decodeError(t, rec)
			if resp.Error.Code != errCodeValidation {
				t.Errorf("Error code = %q, want %q", resp.Error.Code, errCodeValidation)
			}
		})
	}
}

func TestCreateLinkMalformedJSON(t *testing.T) {
	_, handler := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/links", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error.Code != errCodeBadRequest {
		t.Errorf("Error code = %q, want %q", resp.Error.Code, errCodeBadRequest)
	}
}

func TestListLinksSearch(t *testing.T) {
	_, handler := newTestRouter(t)

	createLink(t, handler, models.CreateLinkRequest{Title: "Go Blog", URL: "https://go.dev/blog", Tags: []string{"golang"}})
	createLink(t, handler, models.CreateLinkRequest{Title: "Rust Book", URL: "https://doc.rust-lang.org/book"})

	tests := []struct {
		name   string
		query  string
		expect int
	}{
		{"no filter", "", 2},
		{"title match", "?search=go+blog", 1},
		{"case insensitive", "?search=RUST", 1},
		{"tag membership", "?search=golang", 1},
		{"partial tag no match", "?search=gola", 0},
		{"no match", "?search=zig", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var links []models.Link
			rec := doJSON(t, handler, http.MethodGet, "/api/links"+tt.query, nil, &links)
			if rec.Code != http.StatusOK {
				t.Fatalf("Status = %d, want 200", rec.Code)
			}
			if len(links) != tt.expect {
				t.Errorf("Got %d links, want %d", len(links), tt.expect)
			}
		})
	}
}

func TestUpdateLink(t *testing.T) {
	_, handler := newTestRouter(t)

	link := createLink(t, handler, models.CreateLinkRequest{Title: "Old", URL: "https://example.com"})

	newTitle := "New"
	var updated models.Link
	rec := doJSON(t, handler, http.MethodPut, "/api/links/"+itoa(link.ID), models.UpdateLinkRequest{Title: &newTitle}, &updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}
	if updated.Title != "New" {
		t.Errorf("Title = %q, want New", updated.Title)
	}
	if updated.URL != "https://example.com" {
		t.Errorf("URL changed unexpectedly to %q", updated.URL)
	}
}

func TestUpdateLinkNotFound(t *testing.T) {
	_, handler := newTestRouter(t)

	title := "x"
	rec := doJSON(t, handler, http.MethodPut, "/api/links/9999", models.UpdateLinkRequest{Title: &title}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want 404", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error.Code != errCodeNotFound {
		t.Errorf("Error code = %q, want %q", resp.Error.Code, errCodeNotFound)
	}
}

func TestUpdateLinkBadID(t *testing.T) {
	_, handler := newTestRouter(t)

	title := "x"
	rec := doJSON(t, handler, http.MethodPut, "/api/links/abc", models.UpdateLinkRequest{Title: &title}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
}

func TestDeleteLink(t *testing.T) {
	_, handler := newTestRouter(t)

	link := createLink(t, handler, models.CreateLinkRequest{Title: "Doomed", URL: "https://example.com"})

	rec := doJSON(t, handler, http.MethodDelete, "/api/links/"+itoa(link.ID), nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/links/"+itoa(link.ID), nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Second delete status = %d, want 404", rec.Code)
	}
}

func TestCollectionsLifecycle(t *testing.T) {
	_, handler := newTestRouter(t)

	var created models.Collection
	rec := doJSON(t, handler, http.MethodPost, "/api/collections", models.CreateCollectionRequest{Name: "Reading"}, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if created.Color != models.DefaultCollectionColor {
		t.Errorf("Color = %q, want default %q", created.Color, models.DefaultCollectionColor)
	}

	// Attach a link so the list shows a count.
	createLink(t, handler, models.CreateLinkRequest{Title: "In collection", URL: "https://example.com", CollectionID: &created.ID})

	var list []models.CollectionWithCount
	rec = doJSON(t, handler, http.MethodGet, "/api/collections", nil, &list)
	if rec.Code != http.StatusOK {
		t.Fatalf("List status = %d", rec.Code)
	}
	if len(list) != 1 || list[0].LinkCount != 1 {
		t.Fatalf("List = %+v, want one collection with linkCount 1", list)
	}

	newName := "Renamed"
	var updated models.Collection
	rec = doJSON(t, handler, http.MethodPut, "/api/collections/"+itoa(created.ID), models.UpdateCollectionRequest{Name: &newName}, &updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d", rec.Code)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q, want Renamed", updated.Name)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/collections/"+itoa(created.ID), nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Delete status = %d, want 204", rec.Code)
	}

	// The link survives with its dangling collectionId.
	var links []models.Link
	doJSON(t, handler, http.MethodGet, "/api/links", nil, &links)
	if len(links) != 1 {
		t.Fatalf("Expected link to survive collection delete, got %d links", len(links))
	}
	if links[0].CollectionID == nil || *links[0].CollectionID != created.ID {
		t.Error("Expected dangling collectionId to be preserved")
	}
}

func TestCreateCollectionValidation(t *testing.T) {
	_, handler := newTestRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/collections", models.CreateCollectionRequest{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
}

func TestPublicLinksPagination(t *testing.T) {
	_, handler := newTestRouter(t)

	public := true
	for i := 0; i < 5; i++ {
		createLink(t, handler, models.CreateLinkRequest{
			Title:    "Public " + itoa(int64(i)),
			URL:      "https://example.com/" + itoa(int64(i)),
			IsPublic: &public,
		})
	}
	createLink(t, handler, models.CreateLinkRequest{Title: "Private", URL: "https://example.com/private"})

	var page1 models.PublicLinksResponse
	rec := doJSON(t, handler, http.MethodGet, "/api/public/links?page=1&limit=2", nil, &page1)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	if page1.Pagination.Total != 5 {
		t.Errorf("Total = %d, want 5", page1.Pagination.Total)
	}
	if page1.Pagination.Pages != 3 {
		t.Errorf("Pages = %d, want 3", page1.Pagination.Pages)
	}
	if len(page1.Links) != 2 {
		t.Errorf("Page length = %d, want 2", len(page1.Links))
	}

	var page3 models.PublicLinksResponse
	doJSON(t, handler, http.MethodGet, "/api/public/links?page=3&limit=2", nil, &page3)
	if len(page3.Links) != 1 {
		t.Errorf("Last page length = %d, want 1", len(page3.Links))
	}
}

func TestPublicLinksLimitCap(t *testing.T) {
	_, handler := newTestRouter(t)

	var resp models.PublicLinksResponse
	rec := doJSON(t, handler, http.MethodGet, "/api/public/links?limit=5000", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	if resp.Pagination.Limit != 100 {
		t.Errorf("Limit = %d, want capped at 100", resp.Pagination.Limit)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/public/links?limit=-1&page=-2", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	if resp.Pagination.Limit != 20 || resp.Pagination.Page != 1 {
		t.Errorf("Pagination = %+v, want defaults limit 20 page 1", resp.Pagination)
	}
}

func TestTagColors(t *testing.T) {
	_, handler := newTestRouter(t)

	createLink(t, handler, models.CreateLinkRequest{Title: "Tagged", URL: "https://example.com", Tags: []string{"go", "web"}})

	var tags []models.TagColor
	rec := doJSON(t, handler, http.MethodGet, "/api/tags", nil, &tags)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	if len(tags) != 2 {
		t.Fatalf("Got %d tags, want 2", len(tags))
	}
	if tags[0].Tag != "go" || tags[1].Tag != "web" {
		t.Errorf("Tags = %+v, want sorted go, web", tags)
	}
	for _, tc := range tags {
		if tc.Color == "" {
			t.Errorf("Tag %q has no color", tc.Tag)
		}
	}
}

// itoa formats ids for URL construction in tests.
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
