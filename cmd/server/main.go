// Package main is the entry point for the blog API server.
//
// The main package stays minimal. Its job is to:
//  1. Read configuration (defaults, .env, BLOG_* environment variables)
//  2. Create dependencies (logger, database store)
//  3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
//
// Run with -routes to print a Markdown table of every route and exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-chi/docgen"

	"github.com/sakif/blog-api/internal/config"
	"github.com/sakif/blog-api/internal/repository/sqlstore"
	"github.com/sakif/blog-api/internal/server"
)

const projectPath = "github.com/sakif/blog-api"

var printRoutes = flag.Bool("routes", false, "print route documentation as Markdown and exit")

func main() {
	flag.Parse()

	// === 1. READ CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	logger := newLogger(os.Stdout, cfg.Log)

	if *printRoutes {
		if err := writeRoutes(os.Stdout); err != nil {
			logger.Error("failed to generate route docs", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	// === 3. OPEN THE STORE ===
	// The SQLite file lives under a directory that may not exist yet.
	if cfg.Database.Driver == sqlstore.DriverSQLite && cfg.Database.DSN != ":memory:" {
		dbDir := filepath.Dir(cfg.Database.DSN)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	store, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("failed to open database",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. CREATE AND START THE SERVER ===
	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	srv := server.New(cfg.Server, store, logger)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// writeRoutes documents the router built over a throwaway in-memory store.
func writeRoutes(w io.Writer) error {
	discard := slog.New(slog.DiscardHandler)

	store, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Driver: sqlstore.DriverSQLite,
		DSN:    ":memory:",
		Logger: discard,
	})
	if err != nil {
		return err
	}

	srv := server.New(config.ServerConfig{CORSOrigins: []string{"*"}}, store, discard)
	defer srv.Close()

	_, err = fmt.Fprintln(w, docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
		ProjectPath: projectPath,
		Intro:       "HTTP JSON API for users and their articles.",
	}))
	return err
}
