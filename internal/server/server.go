// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects handlers, middleware, and routes,
// and decides how the server starts and stops.
//
// DEPENDENCY INJECTION FLOW:
//
//	main.go:       config.Load() → logger → sqlstore.Open() → server.New()
//	server.New():  store → UserService/ArticleService → UserHandler/ArticleHandler → routes
//
// This is the "composition root" pattern: all dependencies are wired in one
// place (New/routes) rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/sakif/blog-api/internal/config"
	"github.com/sakif/blog-api/internal/handler"
	"github.com/sakif/blog-api/internal/middleware"
	"github.com/sakif/blog-api/internal/repository/sqlstore"
	"github.com/sakif/blog-api/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. Start closes it once the HTTP server has
// drained; callers that never Start must call Close themselves.
type Server struct {
	router *chi.Mux
	config config.ServerConfig
	logger *slog.Logger
	store  *sqlstore.DB
}

// route is one row of the route table.
type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

// New wires services and handlers around an open store.
func New(cfg config.ServerConfig, store *sqlstore.DB, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()
	return s
}

// routes is the full API surface. Every {id} is a positive integer in
// practice; anything else is answered by the handler with a 404.
func (s *Server) routes() []route {
	users := handler.NewUserHandler(
		service.NewUserService(s.store.Users(), s.store.Articles(), s.logger),
		s.logger,
	)
	articles := handler.NewArticleHandler(
		service.NewArticleService(s.store.Articles(), s.logger),
		s.logger,
	)

	return []route{
		{http.MethodGet, "/users", users.HandleList},
		{http.MethodPost, "/users", users.HandleCreate},
		{http.MethodGet, "/users/{id}", users.HandleGet},
		{http.MethodPut, "/users/{id}", users.HandleUpdate},
		{http.MethodDelete, "/users/{id}", users.HandleDelete},
		{http.MethodGet, "/users/{id}/articles", users.HandleListArticles},

		{http.MethodGet, "/articles", articles.HandleList},
		{http.MethodPost, "/articles", articles.HandleCreate},
		{http.MethodGet, "/articles/{id}", articles.HandleGet},
		{http.MethodPut, "/articles/{id}", articles.HandleUpdate},
		{http.MethodDelete, "/articles/{id}", articles.HandleDelete},

		{http.MethodGet, "/healthz", handler.Health(s.store, s.logger)},
	}
}

// setupRoutes configures all middleware and route handlers.
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added:
//  1. RequestID: tags the request so every log line about it can be joined
//  2. RealIP: extracts the client IP from proxy headers
//  3. Logger: one line per request, after the handler has run
//  4. Recoverer: turns a panic into a 500 instead of a dropped connection
//  5. StripSlashes: "/users/" routes like "/users"
//  6. CORS: answers preflight requests before routing
//  7. SetContentType: request bodies decode as JSON, responses encode as JSON
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.StripSlashes)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	s.router.Use(render.SetContentType(render.ContentTypeJSON))

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	for _, rt := range s.routes() {
		s.router.Method(rt.method, rt.pattern, rt.handler)
	}
}

// Router exposes the configured router, for tests and route docs.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new HTTP connections
//  2. Wait for in-flight requests to finish (server.shutdown_timeout)
//  3. Close the store (flushes the SQLite WAL, returns pooled connections)
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
