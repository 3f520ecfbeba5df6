package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toytopia/internal/config"
	"toytopia/internal/database"
	"toytopia/internal/logger"
	"toytopia/internal/metrics"
	"toytopia/internal/services"
	"toytopia/pkg/rabbitmq"

	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// --- Document store ---
	store, err := database.Open(context.Background(), cfg.Store, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to connect to the document store")
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize RabbitMQ client")
		}
		publisher = mqClient

		if err := mqClient.ConsumeToyEvents(services.NewToyEventLogger(log)); err != nil {
			log.Error().Err(err).Msg("Failed to start RabbitMQ consumer")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL not set, toy events are disabled")
	}

	app := NewApp(Dependencies{
		Toys:         store.Toys,
		Publisher:    publisher,
		Metrics:      metrics.New(),
		Logger:       log,
		ListLimit:    cfg.Store.ListLimit,
		StoreTimeout: cfg.Store.Timeout,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("Server is running")
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}

	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing RabbitMQ client")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Error closing the document store")
	}

	log.Info().Msg("Server gracefully stopped")
}
