// Package main is the entry point for the photo journal server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for goose

	"github.com/pkordes/photo-journal/internal/config"
	"github.com/pkordes/photo-journal/internal/handler"
	"github.com/pkordes/photo-journal/internal/imageload"
	"github.com/pkordes/photo-journal/internal/middleware"
	"github.com/pkordes/photo-journal/internal/render"
	"github.com/pkordes/photo-journal/internal/repo"
	"github.com/pkordes/photo-journal/internal/service"
	"github.com/pkordes/photo-journal/internal/store"
	"github.com/pkordes/photo-journal/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	slots, closeSlots, err := openSlots(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeSlots()
	slog.Info("store ready", "driver", cfg.StoreDriver)

	var storeOpts []store.Option
	storeOpts = append(storeOpts, store.WithLogger(logger))
	if cfg.StoreKey != "" {
		storeOpts = append(storeOpts, store.WithKey(cfg.StoreKey))
	}
	journeys := repo.NewJourneyRepo(store.NewAdapter(slots, storeOpts...))

	// --- Services ---------------------------------------------------------
	gallery := render.NewGallery()
	loader := imageload.New(
		imageload.WithMaxBytes(cfg.MaxUploadBytes),
		imageload.WithConcurrency(int(cfg.DecodeConcurrency)),
	)
	form := service.NewFormController(journeys, gallery, loader, logger)

	// An unreadable store leaves the gallery empty; the page still serves.
	if err := form.Hydrate(context.Background()); err != nil {
		slog.Error("failed to load journeys; starting with an empty gallery", "error", err)
	} else {
		slog.Info("gallery hydrated", "cards", len(form.Cards()))
	}

	pages, err := render.NewRenderer()
	if err != nil {
		slog.Error("failed to parse page templates", "error", err)
		os.Exit(1)
	}

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// The body limit leaves headroom over the photo cap for the other form fields.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes + 1<<20))

	srv := handler.NewServer(form, journeys, service.NewExportService(journeys), pages, logger)
	srv.Register(r)

	// --- HTTP Server ------------------------------------------------------
	// Photo uploads get a longer read window than a plain JSON API would.
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSlots builds the slot backend named by cfg.StoreDriver. The returned
// func releases its resources.
func openSlots(ctx context.Context, cfg config.Config) (store.Slots, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemorySlots(), func() {}, nil
	case config.DriverPostgres:
		if err := migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store.NewPGSlots(pool), pool.Close, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, err
		}
		return store.NewDiskSlots(cfg.DataDir), func() {}, nil
	}
}

// migrate applies pending goose migrations over a short-lived database/sql handle.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", n)
	return nil
}
