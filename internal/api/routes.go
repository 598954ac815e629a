package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(10 * time.Second))

		r.Route("/drill", func(r chi.Router) {
			r.Post("/start", s.handleStartDrill)
			r.Post("/check", s.handleCheckAnswer)
			r.Post("/end", s.handleEndDrill)
			r.Get("/legal-moves", s.handleLegalMoves)
		})
		r.Get("/stats", s.handleStats)
		r.Get("/stats/heatmap", s.handleHeatmap)
	})
	return r
}
