// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

// Package main is the entry point for the LinkVault server application.
//
// LinkVault is a self-hosted bookmark manager with link collections,
// per-user saved links, a public discovery feed, and real-time updates
// over WebSocket.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB and run schema migrations
//  3. WebSocket Hub: Enable real-time entity events to connected clients
//  4. HTTP Server: REST API under /api plus /metrics and the /ws upgrade endpoint
//  5. Echo Listener (optional): Standalone WebSocket echo service on its own port
//
// All long-running components are managed by a suture supervisor tree so a
// crashed service is restarted with backoff instead of taking the process down.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Common settings:
//   - HTTP_HOST / HTTP_PORT: API bind address (default 0.0.0.0:8080)
//   - ECHO_ENABLED / ECHO_PORT: echo listener (default true, port 8081)
//   - DUCKDB_PATH: database file path
//   - CORS_ORIGINS: comma-separated allowed origins
//   - LOG_LEVEL / LOG_FORMAT: zerolog settings
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the WebSocket hub and database connection
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skartik/linkvault/internal/api"
	"github.com/skartik/linkvault/internal/config"
	"github.com/skartik/linkvault/internal/database"
	"github.com/skartik/linkvault/internal/logging"
	"github.com/skartik/linkvault/internal/supervisor"
	"github.com/skartik/linkvault/internal/supervisor/services"
	ws "github.com/skartik/linkvault/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting LinkVault with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Bool("echo_enabled", cfg.Echo.Enabled).
		Msg("Configuration loaded")

	// Initialize database and run migrations
	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*)")
		logging.Warn().Msg("Set specific origins in production, e.g. CORS_ORIGINS=https://yourdomain.com")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create WebSocket hub for real-time entity events (before handlers)
	wsHub := ws.NewHub()

	handler := api.NewHandler(db, cfg, wsHub)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	// Messaging layer services
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	logging.Info().Msg("WebSocket hub added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService("api-server", server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Echo.Enabled {
		echoServer := &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Echo.Port),
			Handler:      handler.EchoRouter(),
			ReadTimeout:  cfg.Server.Timeout,
			WriteTimeout: cfg.Server.Timeout,
			IdleTimeout:  60 * time.Second,
		}
		tree.AddAPIService(services.NewHTTPServerService("echo-server", echoServer, 10*time.Second))
		logging.Info().Str("addr", echoServer.Addr).Msg("Echo listener service added")
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
