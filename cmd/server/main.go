package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/portfolio-vis/internal/api"
	"github.com/ndewijer/portfolio-vis/internal/config"
	"github.com/ndewijer/portfolio-vis/internal/logger"
	"github.com/ndewijer/portfolio-vis/internal/provider"
	"github.com/ndewijer/portfolio-vis/internal/scheduler"
	"github.com/ndewijer/portfolio-vis/internal/service"
	"github.com/ndewijer/portfolio-vis/internal/symbols"
	"github.com/ndewijer/portfolio-vis/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger.SetGlobalLogger(appLog)

	appLog.Info().
		Str("version", version.Version).
		Str("provider", cfg.Market.Provider).
		Str("benchmark", cfg.Portfolio.Benchmark).
		Msg("Starting portfolio server")

	// Market data source
	source, err := provider.New(cfg.Market, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to create market data source")
	}

	// Symbol catalog; a missing file leaves the picker empty but the API usable
	catalog := symbols.NewCatalog(cfg.Symbols.CSVPath, appLog)
	sched := scheduler.New(appLog)
	if err := sched.RunNow(catalog); err != nil {
		appLog.Warn().Err(err).Str("path", cfg.Symbols.CSVPath).Msg("Symbol catalog not loaded")
	}
	if err := sched.AddJob(cfg.Symbols.RefreshCron, catalog); err != nil {
		appLog.Fatal().Err(err).Str("schedule", cfg.Symbols.RefreshCron).Msg("Invalid catalog refresh schedule")
	}
	sched.Start()

	// Create services
	services := api.Services{
		Portfolio: service.NewPortfolioService(source, cfg.Portfolio, cfg.Market.Timeout, appLog),
		Symbol:    service.NewSymbolService(catalog),
		System:    service.NewSystemService(source.Name(), cfg.Portfolio.Benchmark, catalog),
	}

	// Create router
	router := api.NewRouter(services, cfg, appLog)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLog.Info().Str("addr", cfg.Server.Addr).Msg("Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sched.Stop()
	if err := server.Shutdown(ctx); err != nil {
		appLog.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	appLog.Info().Msg("Server exited")
}
