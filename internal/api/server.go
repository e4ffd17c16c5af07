/*
Package api exposes the liability engine over HTTP.

ROUTES:
  GET  /healthz            Liveness probe
  GET  /api/assumptions    Options and tables the engine was built with
  POST /api/liabilities    Calculate a batch of employees, optionally archived
  POST /api/breakdown      One employee with every projection year
  GET  /api/runs           Archived runs, newest first
  GET  /api/runs/{id}      One archived run with its rows

Employees are posted as objects keyed by sheet header (Hebrew or English
spelling, or the canonical snake_case key), so the same normalization
applies as for uploaded sheets.
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/assumptions", h.GetAssumptions)
		r.Post("/liabilities", h.CalculateLiabilities)
		r.Post("/breakdown", h.Breakdown)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", h.ListRuns)
			r.Get("/{id}", h.GetRun)
		})
	})

	return r
}

// NewServer wraps the router in an http.Server with conservative timeouts.
func NewServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      5 * time.Minute,
	}
}
