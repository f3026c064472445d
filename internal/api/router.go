package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/api/handler"
	customMiddleware "github.com/LuYomayel/fe-quality-blinds-sub000/internal/api/middleware"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/chat"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/completion"
	"github.com/LuYomayel/fe-quality-blinds-sub000/internal/config"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, session *chat.Session, client *completion.Client, hub *chat.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	chatHandler := handler.NewChatHandler(session, client)
	eventsHandler := handler.NewEventsHandler(hub, cfg.CORS.AllowedOrigins)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)

		// Event stream stays outside the timeout group, the socket is
		// long-lived.
		r.Get("/chat/events", eventsHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Route("/chat", func(r chi.Router) {
				r.Post("/open", chatHandler.Open)
				r.Post("/close", chatHandler.Close)
				r.Post("/message", chatHandler.Message)
				r.Post("/action", chatHandler.Action)
				r.Post("/reset", chatHandler.Reset)
				r.Get("/transcript", chatHandler.Transcript)
				r.Get("/lead-draft", chatHandler.LeadDraft)
				r.Post("/summary", chatHandler.Summary)
			})
		})
	})

	return r
}
