package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"collie/internal/amqp"
	"collie/internal/cache"
	"collie/internal/config"
	"collie/internal/geodata"
	"collie/internal/geodata/osm"
	"collie/internal/geodata/static"
	apphttp "collie/internal/http"
	"collie/internal/services"
	"collie/internal/storage"
	"collie/internal/trips/memory"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Geodata source selection.
	var source geodata.Source
	switch cfg.GeodataBackend {
	case "static":
		source = static.New()
		logger.Info("Initialized static geodata backend")
	default:
		source = osm.NewClient(osm.Config{
			NominatimURL: cfg.NominatimURL,
			OverpassURL:  cfg.OverpassURL,
			UserAgent:    cfg.UserAgent,
		})
		logger.Info("Initialized OSM geodata backend",
			"nominatim", cfg.NominatimURL, "overpass", cfg.OverpassURL)
	}

	// SQLite geodata cache (optional: a failure only loses cross-restart
	// caching).
	var geodataCache *storage.GeodataCache
	if db, err := storage.NewGeodataCache(cfg.GeodataDBPath, cfg.GeodataTTL); err != nil {
		logger.Warn("Geodata cache unavailable, continuing without it", "error", err, "path", cfg.GeodataDBPath)
	} else {
		geodataCache = db
		defer geodataCache.Close()
	}

	recommender := services.NewRecommender(source, geodataCache, nil, services.RecommenderConfig{
		RadiusKM: cfg.RadiusKM,
		CacheTTL: cfg.GeodataTTL,
	})

	cacheManager := cache.NewManager()
	for _, c := range recommender.Caches() {
		cacheManager.Register(c)
	}
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	// AMQP prefetch publisher (optional).
	var publisher apphttp.PrefetchPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("Prefetch publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Prefetch publishing disabled - no AMQP_URL provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, memory.New(), recommender, publisher)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting collie server", "port", cfg.Port, "geodata_backend", cfg.GeodataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
