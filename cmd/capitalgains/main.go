// Package main is the entry point for the capital-gains service: the
// aggregation engine that folds positions from one or many stocks services
// into a single capital-gains total.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aristath/stockfolio/internal/clients/ninja"
	"github.com/aristath/stockfolio/internal/config"
	"github.com/aristath/stockfolio/internal/modules/gains"
	gainshandlers "github.com/aristath/stockfolio/internal/modules/gains/handlers"
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

	log.Info().Msg("Starting capital-gains service")

	upstreams := make([]gains.Upstream, 0, len(cfg.Upstreams))
	for _, u := range cfg.Upstreams {
		upstreams = append(upstreams, gains.Upstream{Tag: u.Tag, BaseURL: u.BaseURL})
	}
	if len(upstreams) == 0 {
		log.Fatal().Msg("No stocks services configured (STOCKS_SERVICES)")
	}

	// Wire clients, aggregation service, handlers
	stocksClient := gains.NewStocksClient(cfg.HTTPTimeout, log)
	prices := ninja.NewClient(cfg.NinjaBaseURL, cfg.NinjaAPIKey, cfg.HTTPTimeout, log)
	service := gains.NewService(upstreams, stocksClient, prices, log)
	handler := gainshandlers.NewHandler(service, log)

	// Periodic upstream reachability probe
	monitor := gains.NewUpstreamMonitor(upstreams, cfg.HTTPTimeout, cfg.ProbeSchedule, log)
	if err := monitor.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start upstream monitor")
	}
	defer monitor.Stop()

	srv := server.New(server.Config{
		Port:    cfg.Port,
		Service: "capital-gains",
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

	log.Info().Int("port", cfg.Port).Int("upstreams", len(upstreams)).Msg("Capital-gains service started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down capital-gains service...")

	monitor.Stop()

	// Graceful shutdown with a 10 second deadline for in-flight requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Capital-gains service stopped")
}
