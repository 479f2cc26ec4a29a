package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Moeabdelaziz007/amrikyyai/internal/api"
	"github.com/Moeabdelaziz007/amrikyyai/internal/config"
	"github.com/Moeabdelaziz007/amrikyyai/internal/engine"
	"github.com/Moeabdelaziz007/amrikyyai/internal/logger"
	"github.com/Moeabdelaziz007/amrikyyai/internal/repository"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("history_backend", cfg.History.Backend).
		Msg("Starting Amrikyy AI demo server")

	historyRepo, closeHistory, err := repository.NewHistory(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open chat history store")
	}
	defer closeHistory()

	eng := engine.New(context.Background(), historyRepo)
	router := api.NewRouter(cfg, eng)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
