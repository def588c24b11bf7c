package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalogo/internal/app"
	"catalogo/internal/config"
	"catalogo/internal/logging"
	"catalogo/internal/server"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Getenv("CATALOGO_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(os.Stderr, cfg.Env, cfg.LogLevel)

	// Graceful shutdown on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		stop()
		log.Fatal().Err(err).Msg("failed to open backend")
	}
	defer a.Close()

	if err := server.Run(ctx, cfg, a); err != nil {
		log.Error().Err(err).Msg("server error")
		a.Close()
		os.Exit(1)
	}
}
