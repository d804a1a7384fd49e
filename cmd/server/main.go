package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flr45/Pakkeliste-SBR/internal/config"
	"github.com/flr45/Pakkeliste-SBR/internal/database"
	"github.com/flr45/Pakkeliste-SBR/internal/logging"
	"github.com/flr45/Pakkeliste-SBR/internal/photos"
	"github.com/flr45/Pakkeliste-SBR/internal/server"
	"github.com/flr45/Pakkeliste-SBR/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *database.DB {
	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	build := version.Get()
	slog.Info("Application starting",
		"env", cfg.AppEnv,
		"port", cfg.Port,
		"version", build.Version,
		"commit", build.Commit,
	)

	db := setupDB(cfg)
	defer db.Close()

	photoStore, err := photos.NewStore(cfg.UploadsDir, "/uploads")
	if err != nil {
		slog.Error("Failed to create photo store", "error", err)
		os.Exit(1)
	}

	vehicleRepo := database.NewVehicleRepo(db)
	placeRepo := database.NewPlaceRepo(db)
	itemRepo := database.NewItemRepo(db)

	srv, err := server.NewServer(cfg, vehicleRepo, placeRepo, itemRepo, photoStore, db)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
