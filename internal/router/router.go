package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/waypost-dev/waypost/internal/middleware"
	"github.com/waypost-dev/waypost/internal/middleware/metrics"
	rl "github.com/waypost-dev/waypost/internal/middleware/ratelimiter"
	"github.com/waypost-dev/waypost/internal/setup"
)

// New wires all routes. Write endpoints require auth; like toggling uses
// optional auth so anonymous toggles degrade to a read.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	auth := deps.Auth

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// authenticated write surface
		r.Group(func(r chi.Router) {
			r.Use(auth.Required)
			r.Use(mw.RateLimit(rl.New(1, 5, time.Hour), mw.UserIdentity)) // 1 rps burst 5 per user

			r.Post("/threads", h.CreateThread)
			r.Put("/threads/{thread}", h.EditThread)
			r.Delete("/threads/{thread}", h.DeleteThread)
			r.Post("/threads/{thread}/solution/{reply}", h.MarkSolution)
			r.Delete("/threads/{thread}/solution", h.UnmarkSolution)
			r.Post("/threads/{thread}/replies", h.CreateReply)
			r.Delete("/replies/{reply}", h.DeleteReply)
			r.Get("/notifications", h.ListNotifications)
			r.Post("/notifications/{notification}/read", h.MarkNotificationRead)
		})

		// read + optional-auth surface
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Use(mw.RateLimit(rl.Rps100(), mw.IPIdentity))

			r.Get("/threads/{thread}", h.GetThread)
			r.Post("/likes/{kind}/{id}", h.ToggleLike)
		})
	})

	return r
}
