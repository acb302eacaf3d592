package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tidemark/linelog/internal/config"
	"github.com/tidemark/linelog/internal/observability"
	"github.com/tidemark/linelog/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	observability.InitLogger(cfg.LogLevel)

	log.Info().
		Str("version", "0.1.0").
		Msg("Starting linelog compactor")

	// Initialize tracer (if enabled)
	shutdown, err := observability.InitTracer(observability.TracerConfig{
		ServiceName:    "linelog-compactor",
		ServiceVersion: "0.1.0",
		Endpoint:       cfg.TracingEndpoint,
		Protocol:       cfg.TracingProtocol,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer shutdown(context.Background())
	}

	// Create compactor service
	compactorSvc, err := service.NewCompactorService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create compactor service")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start compactor service
	errChan := make(chan error, 1)
	go func() {
		if err := compactorSvc.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	log.Info().Msg("Compactor service started successfully")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info().Msg("Received shutdown signal")
	case err := <-errChan:
		log.Error().Err(err).Msg("Compactor service error")
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	cancel()

	if err := compactorSvc.Stop(); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}

	log.Info().Msg("Compactor service stopped")
}
