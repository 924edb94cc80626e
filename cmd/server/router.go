package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mnemos/mnemos-api/internal/api"
	apiMiddleware "github.com/mnemos/mnemos-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	practiceHandler := api.NewPracticeHandler(
		app.practiceService,
		api.PracticeHandlerConfig{
			DefaultSessionLimit: app.config.Practice.DefaultSessionLimit,
			DefaultHistoryDays:  app.config.Practice.DefaultHistoryDays,
		},
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		// All practice routes require an authenticated owner.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/practice/words", practiceHandler.GetPracticeWords)
			r.Post("/practice/result", practiceHandler.RecordResult)

			r.Get("/vocabulary/statistics", practiceHandler.GetStatistics)
			r.Get("/vocabulary/progress-history", practiceHandler.GetProgressHistory)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
