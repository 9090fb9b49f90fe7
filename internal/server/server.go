// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root": the one place where the whole dependency
// chain is wired together:
//
//	sqlite.DB → UsuarioService / PostagemService → handlers → routes
//
// Handlers never touch the database; services never touch HTTP. main.go only
// builds a Config and calls New + Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Jeanine19/BlogPessoal/internal/auth"
	"github.com/Jeanine19/BlogPessoal/internal/handler"
	"github.com/Jeanine19/BlogPessoal/internal/middleware"
	sqliteRepo "github.com/Jeanine19/BlogPessoal/internal/repository/sqlite"
	"github.com/Jeanine19/BlogPessoal/internal/service"
)

// Config holds server configuration. A struct (instead of individual
// parameters) keeps signatures stable as options are added and lets main.go
// load everything in one place.
type Config struct {
	Port       int
	DBPath     string // path to the SQLite database file, or ":memory:"
	JWTSecret  string // empty → login responses carry no bearer token
	BcryptCost int    // 0 → bcrypt default cost (12)
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, wires services and handlers, and
// registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /usuarios/cadastrar   → register               (public)
//	POST   /usuarios/logar       → login, returns tokens  (public)
//	PUT    /usuarios/atualizar   → update account         (auth)
//	GET    /usuarios/all         → list users             (auth)
//	GET    /usuarios/{id}        → get one user           (auth)
//	POST   /postagens            → create post            (auth)
//	GET    /postagens            → list posts             (auth)
//	GET    /postagens/{id}       → get one post           (auth)
//	PUT    /postagens/{id}       → update post            (auth)
//	DELETE /postagens/{id}       → delete post            (auth)
//
// Middleware order matters: RequestID/RealIP/Recoverer first, then our
// request logger, then (per group) the authentication gate.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID) // internal request id for chi's own tooling
	s.router.Use(chimiddleware.RealIP)    // extract real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // panics become 500s, not crashes

	s.router.Use(middleware.Logger(s.logger))

	var tokens *auth.TokenService
	if s.config.JWTSecret != "" {
		var err error
		tokens, err = auth.NewTokenService(s.config.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
	} else {
		s.logger.Warn("JWT secret not set — login responses will carry no bearer token")
	}

	passwords := auth.NewPasswordService(s.config.BcryptCost)

	usuarioService := service.NewUsuarioService(s.db, passwords, tokens, s.logger)
	postagemService := service.NewPostagemService(s.db, s.logger)

	usuarioHandler := handler.NewUsuarioHandler(usuarioService, s.logger)
	postagemHandler := handler.NewPostagemHandler(postagemService, s.logger)

	// The gate verifies Basic credentials through the user service, or a
	// Bearer JWT when one is presented instead.
	requireAuth := auth.RequireAuth(usuarioService.VerificarCredenciais, tokens)

	s.router.Route("/usuarios", func(r chi.Router) {
		r.Post("/cadastrar", usuarioHandler.HandleCadastrar)
		r.Post("/logar", usuarioHandler.HandleLogar)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Put("/atualizar", usuarioHandler.HandleAtualizar)
			r.Get("/all", usuarioHandler.HandleListar)
			r.Get("/{id}", usuarioHandler.HandleBuscarPorID)
		})
	})

	s.router.Route("/postagens", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", postagemHandler.HandleCriar)
		r.Get("/", postagemHandler.HandleListar)
		r.Get("/{id}", postagemHandler.HandleBuscarPorID)
		r.Put("/{id}", postagemHandler.HandleAtualizar)
		r.Delete("/{id}", postagemHandler.HandleDeletar)
	})

	return nil
}

// Handler exposes the router. Tests mount it on an httptest.Server instead of
// binding a real port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start does this itself; Close exists for
// callers (tests) that never run Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and blocks until shutdown.
//
// Graceful shutdown: stop accepting connections, give in-flight requests 30
// seconds to finish, then close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
