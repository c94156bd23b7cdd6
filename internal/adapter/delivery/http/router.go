// Package http provides the HTTP delivery layer for the URL shortener service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, redirecting visitors and formatting responses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink/pkg/middleware/recoverer"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL shortener API.
// Public and administrative links in responses are rendered against baseURL.
// The OpenAPI document at docsPath is served under /docs/swagger.yml.
func NewRouter(logger *httplog.Logger, baseURL, docsPath string, urlUseCase urlUseCase) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))
	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, docsPath)
	})

	h := newURLHandler(baseURL, urlUseCase, validator.New())

	r.Get("/", handleRoot)
	r.Post("/url", h.createURL)
	r.Route("/admin/{secretKey}", func(r chi.Router) {
		r.Get("/", h.getAdminInfo)
		r.Delete("/", h.deactivateURL)
	})
	r.Get("/{key}", h.forwardToTargetURL)

	return r
}
