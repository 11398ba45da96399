// Package main is the entry point for the stocks service: the HTTP-facing
// CRUD surface over persisted stock positions, plus the live valuation
// endpoints backed by the price oracle.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/stockfolio/internal/clients/ninja"
	"github.com/aristath/stockfolio/internal/config"
	"github.com/aristath/stockfolio/internal/database"
	"github.com/aristath/stockfolio/internal/modules/stocks"
	stockshandlers "github.com/aristath/stockfolio/internal/modules/stocks/handlers"
	"github.com/aristath/stockfolio/internal/server"
	"github.com/aristath/stockfolio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	log.Info().Msg("Starting stocks service")

	db, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "stocks.db"),
		Name: "stocks",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open stocks database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate stocks database")
	}

	// Wire repository, price client, valuation service, handlers
	repo := stocks.NewRepository(db.Conn(), log)
	prices := ninja.NewClient(cfg.NinjaBaseURL, cfg.NinjaAPIKey, cfg.HTTPTimeout, log)
	valuation := stocks.NewValuationService(repo, prices, log)
	handler := stockshandlers.NewHandler(repo, valuation, log)

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Service: "stocks",
		Log:     log,
		DevMode: cfg.DevMode,
		Routes: func(r chi.Router) {
			handler.RegisterRoutes(r)
		},
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Stocks service started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down stocks service...")

	// Graceful shutdown with a 10 second deadline for in-flight requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Stocks service stopped")
}
