// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skartik/linkvault/internal/config"
	"github.com/skartik/linkvault/internal/models"
	ws "github.com/skartik/linkvault/internal/websocket"
)

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		corsOrigins   []string
		requestOrigin string
		want          bool
	}{
		{"no origin header rejected", []string{"http://localhost:3000"}, "", false},
		{"wildcard allows any", []string{"*"}, "http://example.com", true},
		{"exact match allowed", []string{"http://localhost:3000"}, "http://localhost:3000", true},
		{"second origin matches", []string{"http://localhost:3000", "http://example.com"}, "http://example.com", true},
		{"unknown origin rejected", []string{"http://localhost:3000"}, "http://evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := &Handler{config: &config.Config{
				Security: config.SecurityConfig{CORSOrigins: tt.corsOrigins},
			}}

			req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}

			if got := h.checkWebSocketOrigin(req); got != tt.want {
				t.Errorf("checkWebSocketOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWebSocketHubUnavailable(t *testing.T) {
	h := newTestHandler(t)
	h.wsHub = nil
	router := NewRouter(h, NewChiMiddlewareFromConfig(&h.config.Security)).SetupChi()

	rec := doJSON(t, router, http.MethodGet, "/api/ws", nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Status = %d, want 503", rec.Code)
	}
}

// wsURL converts an httptest server URL to a websocket URL.
func wsURL(serverURL, path string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + path
}

func TestWebSocketReceivesEntityEvents(t *testing.T) {
	_, handler := newTestRouter(t)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://example.com"}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv.URL, "/api/ws"), header)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		defer resp.Body.Close()
	}

	// Let the hub register the client before the write triggers a broadcast.
	time.Sleep(50 * time.Millisecond)

	createLink(t, handler, models.CreateLinkRequest{Title: "Broadcast me", URL: "https://example.com"})

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline failed: %v", err)
	}

	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if msg.Type != ws.MessageTypeLinkCreated {
		t.Errorf("Message type = %q, want %q", msg.Type, ws.MessageTypeLinkCreated)
	}
	if msg.Data == nil {
		t.Error("Expected event data")
	}
}

func TestWebSocketPingPong(t *testing.T) {
	_, handler := newTestRouter(t)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://example.com"}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv.URL, "/api/ws"), header)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		defer resp.Body.Close()
	}

	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypePing}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline failed: %v", err)
	}

	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if msg.Type != ws.MessageTypePong {
		t.Errorf("Message type = %q, want %q", msg.Type, ws.MessageTypePong)
	}
}

func TestWebSocketRejectsMissingOrigin(t *testing.T) {
	h := newTestHandler(t)
	h.config.Security.CORSOrigins = []string{"http://localhost:3000"}
	router := NewRouter(h, NewChiMiddlewareFromConfig(&h.config.Security)).SetupChi()

	srv := httptest.NewServer(router)
	defer srv.Close()

	//nolint:bodyclose // Dial returns a nil body on handshake failure
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv.URL, "/api/ws"), nil)
	if err == nil {
		t.Fatal("Expected handshake to fail without Origin header")
	}
	if resp != nil {
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status = %d, want 403", resp.StatusCode)
		}
	}
}

func TestEchoEndpoint(t *testing.T) {
	h := newTestHandler(t)

	srv := httptest.NewServer(h.EchoRouter())
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv.URL, "/"), nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	if resp != nil {
		defer resp.Body.Close()
	}

	const payload = "hello linkvault"
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline failed: %v", err)
	}

	messageType, echoed, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if messageType != websocket.TextMessage {
		t.Errorf("Message type = %d, want text", messageType)
	}
	if string(echoed) != payload {
		t.Errorf("Echoed = %q, want %q", echoed, payload)
	}

	// One user row per inbound message, public like any defaulted user.
	var count, public int
	if err := h.db.Conn().QueryRow("SELECT COUNT(*), COUNT(*) FILTER (WHERE is_public) FROM users").Scan(&count, &public); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("User count = %d, want 1", count)
	}
	if public != 1 {
		t.Errorf("Public user count = %d, want 1", public)
	}
}
