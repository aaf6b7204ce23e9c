package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tryon/internal/adapter/repo"
	"tryon/internal/db"
	httpapi "tryon/internal/http"
	"tryon/internal/http/handlers"
	"tryon/internal/infra"
	"tryon/internal/infra/geoip"
	"tryon/internal/infra/metrics"
	"tryon/internal/middleware"
	"tryon/internal/providers/banana"
	"tryon/internal/providers/serpapi"
	"tryon/internal/storage"
	"tryon/internal/tryon"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	metrics.MustRegister()

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := db.Bootstrap(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap schema")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	bananaClient := banana.NewClient(banana.Options{
		APIKey:   cfg.BananaAPIKey,
		ModelKey: cfg.BananaModelKey,
		BaseURL:  cfg.BananaBaseURL,
		Logger:   &logger,
	})
	if !bananaClient.HasCredentials() {
		logger.Warn().Msg("banana credentials missing, try-on jobs will fail until configured")
	}

	searchClient := serpapi.NewClient(serpapi.Options{
		APIKey:  cfg.SerpAPIKey,
		BaseURL: cfg.SerpAPIBaseURL,
		Logger:  &logger,
	})

	jobs := repo.NewTryOnJobRepository(dbpool)
	orchestrator := tryon.NewOrchestrator(jobs, bananaClient, logger)

	app := handlers.NewApp(jobs, orchestrator, searchClient, fileStore, cfg, logger)
	router := httpapi.NewRouter(app, cfg, logger, lookup)

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
