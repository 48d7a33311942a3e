// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/skartik/linkvault/internal/logging"
	"github.com/skartik/linkvault/internal/models"
)

// Root is the plain-text liveness endpoint at GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("LinkVault is running\n")); err != nil {
		logging.Error().Err(err).Msg("Failed to write liveness response")
	}
}

// Health reports service and database health. The database check uses a
// short deadline so a wedged connection cannot stall monitoring.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := &models.HealthStatus{
		Status:    "ok",
		Database:  "up",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	if err := h.db.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("Health check database ping failed")
		status.Status = "degraded"
		status.Database = "down"
	}

	respondJSON(w, http.StatusOK, status)
}
