// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/skartik/linkvault/internal/logging"
	"github.com/skartik/linkvault/internal/metrics"
	"github.com/skartik/linkvault/internal/models"
)

const echoNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomName generates a short random identifier for echo-created users.
func randomName(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = echoNameAlphabet[rand.IntN(len(echoNameAlphabet))]
	}
	return string(b)
}

// EchoRouter returns the handler tree for the optional echo listener, served
// on its own port.
func (h *Handler) EchoRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/", h.Echo)
	return r
}

// Echo upgrades the connection and echoes every inbound message back
// unchanged. Each message also creates one user with a random name and
// example.com email; a failed creation is logged and the echo still happens.
// Origin is not checked here since the listener exists for non-browser
// clients.
func (h *Handler) Echo(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      func(*http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("Echo upgrade error")
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logging.Debug().Err(err).Msg("error closing echo connection")
		}
	}()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug().Err(err).Msg("echo read error")
			}
			return
		}

		h.createEchoUser()
		metrics.RecordEchoMessage()

		if err := conn.WriteMessage(messageType, message); err != nil {
			logging.Debug().Err(err).Msg("echo write error")
			return
		}
	}
}

// createEchoUser inserts one user per inbound echo message. The request
// context is not used: the connection is hijacked and its context lifetime
// no longer tracks the writes.
func (h *Handler) createEchoUser() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	email := randomName(10) + "@example.com"
	user := &models.User{
		Name:     randomName(8),
		Email:    &email,
		IsPublic: true,
	}

	if err := h.db.CreateUser(ctx, user); err != nil {
		logging.Warn().Err(err).Msg("Echo user creation failed")
		return
	}

	metrics.RecordEntityWrite("user", "create")
}
