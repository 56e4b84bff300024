package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"collie/internal/amqp"
	"collie/internal/config"
	"collie/internal/geodata/osm"
	"collie/internal/services"
	"collie/internal/storage"
	"collie/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting collie-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	// The worker always warms through the sqlite cache; that is the
	// whole point of prefetching.
	geodataCache, err := storage.NewGeodataCache(cfg.GeodataDBPath, cfg.GeodataTTL)
	if err != nil {
		logger.Error("Failed to open geodata cache", "error", err, "path", cfg.GeodataDBPath)
		os.Exit(1)
	}
	defer geodataCache.Close()

	source := osm.NewClient(osm.Config{
		NominatimURL: cfg.NominatimURL,
		OverpassURL:  cfg.OverpassURL,
		UserAgent:    cfg.UserAgent,
	})

	recommender := services.NewRecommender(source, geodataCache, nil, services.RecommenderConfig{
		RadiusKM: cfg.RadiusKM,
		CacheTTL: cfg.GeodataTTL,
	})
	prefetchWorker := worker.NewPrefetchWorker(recommender)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return amqpClient.ConsumePrefetch(ctx, func(msg *amqp.PrefetchMessage) error {
			return prefetchWorker.HandlePrefetchMessage(ctx, msg)
		})
	})

	// Janitor: drop expired cache rows so the sqlite file stays small.
	group.Go(func() error {
		ticker := time.NewTicker(cfg.PurgeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if _, err := geodataCache.PurgeExpired(ctx); err != nil {
					logger.Error("Cache purge failed", "error", err)
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
