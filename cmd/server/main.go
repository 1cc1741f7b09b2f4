package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newsroom-web/internal/api"
	"github.com/newsroom-web/internal/auth"
	"github.com/newsroom-web/internal/config"
	"github.com/newsroom-web/internal/database"
	"github.com/newsroom-web/internal/repository"
	"github.com/newsroom-web/internal/service"
	"github.com/newsroom-web/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting newsroom web server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.HealthCheck(pingCtx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}
	pingCancel()

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Identity provider
	var verifier *auth.Verifier
	if cfg.Auth.Enabled {
		verifier, err = auth.NewVerifier(&cfg.Auth)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure auth")
		}
	}

	// Initialize router
	router := api.NewRouter(services, cfg, verifier, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("driver", db.Driver()).
			Bool("auth", verifier != nil).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	stats := db.Stats()
	log.Info().
		Int("open_connections", stats.OpenConnections).
		Int64("wait_count", stats.WaitCount).
		Msg("Server exited gracefully")
}
