package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onsen-store/internal/auth"
	"onsen-store/internal/broker"
	"onsen-store/internal/cartstore"
	"onsen-store/internal/config"
	"onsen-store/internal/database"
	"onsen-store/internal/handler"
	"onsen-store/internal/pricing"
	"onsen-store/internal/redisclient"
	"onsen-store/internal/repository"
	"onsen-store/internal/router"
	"onsen-store/internal/service"
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
	logger.Info().Msg("starting onsen store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize Redis for session carts and checkout locks
	redisClient, err := redisclient.NewClient(cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redisClient.Close()

	// Resolve the pricing policy, with S3 and local fallback
	policy := pricing.DefaultPolicy()
	if cfg.Pricing.PolicyFile != "" {
		fileLoader := pricing.NewFileLoader(logger)
		var s3Loader pricing.Loader

		if cfg.Pricing.S3.Enabled {
			s3Loader, err = pricing.NewS3Loader(ctx, cfg.Pricing.S3.Bucket, cfg.Pricing.S3.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
				s3Loader = nil
			}
		}

		loader := pricing.NewFallbackLoader(s3Loader, fileLoader, cfg.Pricing.S3.Prefix, cfg.Pricing.S3.Enabled, logger)
		policy, err = loader.Load(ctx, cfg.Pricing.PolicyFile)
		if err != nil {
			return fmt.Errorf("failed to load pricing policy: %w", err)
		}
	} else {
		logger.Info().Msg("no pricing policy file configured, using default policy")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize the cart store
	cartStore := cartstore.NewRedisStore(redisClient, time.Duration(cfg.Redis.CartTTL)*time.Second, logger)

	// Initialize the order event publisher
	var publisher broker.Publisher
	if cfg.Kafka.Enabled {
		publisher = broker.NewKafkaPublisher(cfg.Kafka, logger)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka publisher initialised")
	} else {
		publisher = broker.NewNopPublisher()
		logger.Info().Msg("kafka disabled, order events will be discarded")
	}
	defer publisher.Close()

	// Initialize the auth gateway
	gateway := auth.NewGateway(cfg.Auth, logger)
	authMW := auth.NewMiddleware(gateway, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartStore, productRepo, policy, logger)
	orderService := service.NewOrderService(
		orderRepo,
		cartStore,
		redisClient,
		publisher,
		policy,
		time.Duration(cfg.Redis.LockTTL)*time.Second,
		logger,
	)
	userService := service.NewUserService(userRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product: handler.NewProductHandler(productService, logger),
		Cart:    handler.NewCartHandler(cartService, logger),
		Order:   handler.NewOrderHandler(orderService, logger),
		User:    handler.NewUserHandler(userService, logger),
	}

	// Initialize router
	mux := router.New(handlers, authMW, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
