// Package api provides the HTTP API server and handlers for poem-studio.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/srkarthi1982/poem-studio/internal/auth"
	"github.com/srkarthi1982/poem-studio/internal/store"
	"github.com/srkarthi1982/poem-studio/internal/validation"
)

const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       *store.Store
	services    *Services
	tokens      *auth.TokenService
	router      *chi.Mux
	api         huma.API
	validator   *validation.Validator
	logger      *slog.Logger
	rateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *store.Store, services *Services, tokens *auth.TokenService, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(tokens))

	// Middleware must be attached before humachi registers routes.
	rateLimiter := NewRateLimiter(300, time.Minute, 100)
	router.Use(RateLimitMiddleware(rateLimiter, logger))

	humaConfig := huma.DefaultConfig("Poem Studio API", apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:       store,
		services:    services,
		tokens:      tokens,
		router:      router,
		api:         humaAPI,
		validator:   validation.New(),
		logger:      logger,
		rateLimiter: rateLimiter,
	}

	s.registerHealthRoutes()
	s.registerCollectionRoutes()
	s.registerPoemRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned background resources. Safe to call more
// than once.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}
