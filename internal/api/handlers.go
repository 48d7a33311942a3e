// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skartik/linkvault/internal/config"
	"github.com/skartik/linkvault/internal/database"
	"github.com/skartik/linkvault/internal/logging"
	ws "github.com/skartik/linkvault/internal/websocket"
)

// Version is the build version, overridden at link time.
var Version = "dev"

// Handler contains dependencies for API handlers.
type Handler struct {
	db        *database.DB
	config    *config.Config
	wsHub     *ws.Hub
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - db: database connection for data access
//   - cfg: application configuration
//   - wsHub: websocket hub for entity event broadcasts (optional)
func NewHandler(db *database.DB, cfg *config.Config, wsHub *ws.Hub) *Handler {
	return &Handler{
		db:        db,
		config:    cfg,
		wsHub:     wsHub,
		startTime: time.Now(),
	}
}

// broadcast publishes an entity event to connected websocket clients.
// A nil hub is a no-op so handlers never need to check.
func (h *Handler) broadcast(messageType string, data interface{}) {
	if h.wsHub != nil {
		h.wsHub.BroadcastJSON(messageType, data)
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout so slow clients cannot hold the accept loop.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Legitimate browser WebSockets always include Origin. Allowing an
	// empty Origin would bypass CORS entirely.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// Fail open when no config is wired (tests).
	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and registers the client with the hub.
// Clients receive link and collection change events as they happen.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil, nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
