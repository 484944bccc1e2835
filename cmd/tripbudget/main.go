package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"tripbudget/internal/amqp"
	"tripbudget/internal/cli"
	apphttp "tripbudget/internal/http"
	"tripbudget/internal/repository"
	"tripbudget/internal/travelapi"
	"tripbudget/internal/view"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_FORMAT"))
	cfg := cli.LoadAndValidateConfig(logger)

	kv := cli.InitStorage(logger, cfg)
	defer func() { _ = kv.Close() }()

	repoOpts := []repository.Option{repository.WithLogger(logger)}

	// AMQP is optional: without a URL mutations simply go unpublished, and a
	// broker that is down at startup must not keep the app from serving.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, events disabled", "error", err)
		} else {
			defer events.Close()
			repoOpts = append(repoOpts, repository.WithEvents(events))
			logger.Info("AMQP event publishing enabled",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	deps := &view.Deps{
		Store:     repository.New(kv, repoOpts...),
		Rates:     travelapi.NewRatesClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, cfg.RateCacheTTL),
		Countries: travelapi.NewCountriesClient(cfg.CountriesAPIURL, cfg.RateCacheTTL),
		Images:    travelapi.NewImagesClient(cfg.UnsplashAPIURL, cfg.UnsplashAccessKey),
		Logger:    logger,
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, deps)
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting tripbudget server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"rates_configured", cfg.ExchangeRateAPIKey != "")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
