// Package main is the entry point for the blog backend.
//
// main() stays minimal — its only jobs are:
//  1. Read configuration from environment variables
//  2. Create the logger
//  3. Hand both to the server and start it
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, ...). The cmd/server layout is the Go convention for
// executable entry points; a second binary would get its own cmd/ directory.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Jeanine19/BlogPessoal/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// PORT defaults to 8080; os.Getenv returns "" when unset.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH allows overriding for deployments, e.g.
	// DB_PATH=/var/lib/blogpessoal/prod.db
	dbPath := "data/blogpessoal.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// Ensure the data directory exists (like `mkdir -p`).
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// JWT_SECRET must be a long random string, e.g.
	//   JWT_SECRET=$(openssl rand -hex 32)
	// If unset the server still runs — logins just won't include a bearer
	// token, and clients authenticate with Basic credentials per request.
	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			logger.Error("invalid BCRYPT_COST value", slog.String("value", costStr))
			os.Exit(1)
		}
		cfg.BcryptCost = cost
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
