package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-kart/internal/config"
	"checkout-kart/internal/database"
	"checkout-kart/internal/dispatch"
	"checkout-kart/internal/events"
	"checkout-kart/internal/handler"
	"checkout-kart/internal/receipt"
	"checkout-kart/internal/repository"
	"checkout-kart/internal/router"
	"checkout-kart/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting checkout-kart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations before serving
	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize receipt store with S3 and local fallback
	fileStore := receipt.NewFileStore(cfg.Receipt.Dir, logger)
	var s3Store receipt.Store
	s3Enabled := cfg.S3.Enabled

	if s3Enabled {
		s3Store, err = receipt.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 receipt store, falling back to local file system only")
			s3Enabled = false
		}
	} else {
		logger.Info().
			Str("dir", cfg.Receipt.Dir).
			Msg("using local file system for receipts (S3 disabled)")
	}
	receiptStore := receipt.NewFallbackStore(s3Store, fileStore, cfg.S3.Prefix, s3Enabled, logger)

	// Initialize order event publisher
	publisher := events.NewNoopPublisher()
	if cfg.RabbitMQ.Enabled {
		publisher, err = events.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize order event publisher: %w", err)
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close order event publisher")
		}
	}()

	// Initialize order dispatch
	statuses := dispatch.NewStatusStore()
	dispatcher := dispatch.NewDispatcher(orderRepo, statuses, logger,
		dispatch.WithPublisher(publisher),
		dispatch.WithReceipts(receiptStore),
	)

	// Initialize services
	checkoutStore := service.NewCheckoutStore(cartRepo, dispatcher, statuses)
	checkoutService := service.NewCheckoutService(checkoutStore, cfg.Checkout.ConfirmationRoute, logger)
	orderService := service.NewOrderService(orderRepo, logger)

	// Initialize HTTP handlers
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(checkoutHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		// Let in-flight orders finish before the pool closes
		if err := dispatcher.Close(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to drain in-flight orders")
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
