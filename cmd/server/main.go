package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecomate/backend/config"
	"github.com/ecomate/backend/internal/app"
	"github.com/ecomate/backend/internal/infrastructure/catalog"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.Log.Level, cfg.Server.Environment)
	logger := logging.Logger("server")

	logger.Info().
		Str("version", "1.0.0").
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.Source).
		Dur("cacheTTL", cfg.Cache.TTL).
		Msg("starting EcoMate backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(ctx, cfg, catalog.NewLoader())
	defer application.Close()

	if err := application.Serve(ctx); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}
