package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Moeabdelaziz007/amrikyyai/internal/api/handler"
	"github.com/Moeabdelaziz007/amrikyyai/internal/config"
	"github.com/Moeabdelaziz007/amrikyyai/internal/engine"
)

// NewRouter wires the canned-response engine behind the backend's REST
// contract.
func NewRouter(cfg *config.Config, eng *engine.Engine) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// The demo server is meant for a browser frontend on another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	chatHandler := handler.NewChatHandler(eng)
	documentHandler := handler.NewDocumentHandler(eng, cfg.Server.UploadDir)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/query", chatHandler.Query)

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", chatHandler.ListConversations)

				r.Route("/{conversationID}", func(r chi.Router) {
					r.Get("/", chatHandler.GetConversation)
					r.Delete("/", chatHandler.DeleteConversation)
				})
			})
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documentHandler.List)
			r.Post("/upload", documentHandler.Upload)
		})
	})

	return r
}
