// LinkVault - Bookmark Management and Link Sharing Platform
// Copyright 2026 Kartik S. (skartik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skartik/linkvault

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skartik/linkvault/internal/middleware"
)

// Router wires handlers and middleware into the HTTP routing table.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a new router.
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// A matched route with an unsupported method is a 405 with a structured
	// body; an unmatched path is a 404.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusNotFound, errCodeNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, "Method not allowed", nil, nil)
	})

	r.Get("/", router.handler.Root)

	// Shared limiter instances so counters aren't split across route groups.
	rateLimit := router.chiMiddleware.RateLimit()
	writeLimit := router.chiMiddleware.WriteRateLimit()

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		// Health stays outside the rate limited group so aggressive probe
		// intervals never starve real traffic of budget (or vice versa).
		r.Get("/health", router.handler.Health)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)

			r.Get("/ws", router.handler.WebSocket)

			r.Route("/links", func(r chi.Router) {
				r.Get("/", router.handler.ListLinks)
				r.With(writeLimit).Post("/", router.handler.CreateLink)
				r.With(writeLimit).Put("/{id}", router.handler.UpdateLink)
				r.With(writeLimit).Delete("/{id}", router.handler.DeleteLink)
			})

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", router.handler.ListCollections)
				r.With(writeLimit).Post("/", router.handler.CreateCollection)
				r.With(writeLimit).Put("/{id}", router.handler.UpdateCollection)
				r.With(writeLimit).Delete("/{id}", router.handler.DeleteCollection)
			})

			r.Get("/public/links", router.handler.PublicLinks)

			r.Route("/users", func(r chi.Router) {
				r.With(writeLimit).Post("/", router.handler.CreateUser)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", router.handler.GetUser)
					r.With(writeLimit).Put("/", router.handler.UpdateUser)
					r.With(writeLimit).Delete("/", router.handler.DeleteUser)
					r.Get("/saved-links", router.handler.ListSavedLinks)
					r.With(writeLimit).Post("/saved-links", router.handler.CreateSavedLink)
				})
			})

			r.Get("/tags", router.handler.ListTagColors)
		})
	})

	// Prometheus exposition, outside the /api middleware stack.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
