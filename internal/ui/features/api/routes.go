// Package api serves the dashboard data as JSON.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/waterdash/internal/engine"
)

// SetupRoutes configures routes for the JSON API.
func SetupRoutes(router chi.Router, eng *engine.Engine) error {
	handlers := NewHandlers(eng)

	router.Route("/api", func(r chi.Router) {
		r.Get("/report", handlers.Report)
		r.Get("/years", handlers.Years)
		r.Get("/states", handlers.States)
	})

	return nil
}
