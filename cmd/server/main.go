package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmorelli/confab/internal/api"
	"github.com/jmorelli/confab/internal/backend"
	"github.com/jmorelli/confab/internal/config"
	"github.com/jmorelli/confab/internal/engine"
	"github.com/jmorelli/confab/internal/storage"
	"github.com/jmorelli/confab/internal/storage/memory"
	"github.com/jmorelli/confab/internal/storage/postgres"
	"github.com/jmorelli/confab/internal/storage/redis"
	"github.com/jmorelli/confab/internal/storage/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Str("backend", cfg.Backend.ChatURL).
		Msg("Starting confab session engine")

	// Initialize storage
	kv, err := openKV(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	store := storage.NewStore(kv)
	defer store.Close()

	// Initialize backend client and engine
	client := backend.NewClient(cfg.Backend.ChatURL, cfg.Backend.Timeout)
	eng := engine.New(store, client)
	eng.Restore(context.Background())

	// Initialize router
	router := api.NewRouter(eng)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func openKV(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return sqlite.Open(ctx, cfg.SQLite.Path)
	case "postgres":
		return postgres.Open(ctx, cfg.Postgres)
	case "redis":
		return redis.Open(ctx, cfg.Redis)
	case "memory":
		return memory.NewKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
