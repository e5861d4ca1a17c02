package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmorelli/confab/internal/api/handler"
	customMiddleware "github.com/jmorelli/confab/internal/api/middleware"
	"github.com/jmorelli/confab/internal/engine"
)

// NewRouter creates and configures the HTTP router
func NewRouter(eng *engine.Engine) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	chatHandler := handler.NewChatHandler(eng)
	sessionHandler := handler.NewSessionHandler(eng)
	settingsHandler := handler.NewSettingsHandler(eng)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/", chatHandler.Send)
			r.Post("/regenerate", chatHandler.Regenerate)
			r.Post("/new", chatHandler.StartNew)
			r.Get("/messages", chatHandler.Messages)
			r.Post("/messages/{messageID}/star", chatHandler.ToggleStarMessage)
			r.Get("/export", chatHandler.Export)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.Search)
			r.Delete("/", sessionHandler.ClearAll)
			r.Delete("/{sessionID}", sessionHandler.Delete)
			r.Post("/{sessionID}/star", sessionHandler.ToggleStar)
			r.Post("/{sessionID}/archive", sessionHandler.ToggleArchive)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Update)
			r.Put("/theme", settingsHandler.SetTheme)
		})

		r.Route("/owner", func(r chi.Router) {
			r.Get("/", settingsHandler.GetOwner)
			r.Put("/", settingsHandler.SetOwner)
		})
	})

	return r
}
