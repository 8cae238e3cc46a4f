package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/stride-risk/internal/api"
	apiMiddleware "github.com/phrazzld/stride-risk/internal/api/middleware"
)

// requestTimeout bounds the time a single request may spend in a handler.
const requestTimeout = 30 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	sampleHandler := api.NewSampleHandler(app.assessmentService, app.logger)
	assessmentHandler := api.NewAssessmentHandler(app.assessmentService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Ingestion
		r.Post("/samples", sampleHandler.IngestSample)

		// Per-user reads
		r.Get("/users/{userID}/assessment", assessmentHandler.GetAssessment)
		r.Get("/users/{userID}/samples", sampleHandler.GetHistory)

		// Catalogs
		r.Get("/risk-factors", assessmentHandler.ListRiskFactors)
		r.Get("/injury-patterns", assessmentHandler.ListInjuryPatterns)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
