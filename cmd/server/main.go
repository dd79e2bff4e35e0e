package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skinmatch/backend/config"
	httpDelivery "github.com/skinmatch/backend/internal/delivery/http"
	"github.com/skinmatch/backend/internal/domain"
	"github.com/skinmatch/backend/internal/infrastructure/cache"
	"github.com/skinmatch/backend/internal/infrastructure/catalog"
	"github.com/skinmatch/backend/internal/logging"
	"github.com/skinmatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	logging.Info().
		Str("version", httpDelivery.Version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache_type", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Int("rate_limit_per_ip", cfg.RateLimit.PerIP).
		Msg("starting SkinMatch backend")

	// Initialize infrastructure dependencies
	var resultCache domain.CacheRepository = cache.NoopCache{}
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCacheWithCleanup(time.Minute)
		defer memoryCache.Close()
		resultCache = memoryCache
	}

	productCatalog := catalog.NewMemoryCatalog()

	// Initialize usecase layer
	recommender, err := usecase.NewRecommenderService(
		productCatalog,
		resultCache,
		usecase.RecommenderConfig{
			DefaultLimit: cfg.Recommender.DefaultLimit,
			CacheTTL:     cfg.Cache.TTL,
		},
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize recommender")
	}

	features := recommender.Features()
	logging.Info().
		Int("products", len(features.Rows)).
		Int("columns", len(features.Columns)).
		Msg("catalog loaded")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommender, cfg.Recommender.MaxLimit)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
