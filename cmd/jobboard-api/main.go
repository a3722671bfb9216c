// cmd/jobboard-api/main.go
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

	"go.uber.org/zap"

	"jobboard-api/internal/analytics"
	"jobboard-api/internal/api"
	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/database"
	apperrors "jobboard-api/internal/common/errors"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/common/observability"
	"jobboard-api/internal/search"
	"jobboard-api/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting jobboard api...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name, cfg.Tracing, nil, log)
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Elasticsearch ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Redis ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Store and indices ---
	docs := store.New(esClient.Client, cfg.Indices, obs, log)
	created, err := docs.EnsureIndices(ctx)
	if err != nil {
		zapLog.Fatal("index setup failed", zap.Error(err))
	}
	if len(created) > 0 {
		zapLog.Info("Indices created", zap.Strings("indices", created))
	}

	// --- Services ---
	errs := apperrors.NewErrorHandler(log)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTL)*time.Minute)
	revocations := auth.NewRevocations(redis.Client)

	searchService := search.NewService(docs, docs, docs, config.GetDuration(cfg.Search.Timeout), log)
	reporter := analytics.NewReporter(docs, analytics.Options{
		Timeout:        config.GetDuration(cfg.Analytics.Timeout),
		MaxConcurrency: cfg.Analytics.MaxConcurrency,
		TopSkills:      cfg.Analytics.TopSkills,
		TopCompanies:   cfg.Analytics.TopCompanies,
		TopLocations:   cfg.Analytics.TopLocations,
	}, obs, log)

	router := api.NewRouter(api.Deps{
		Search:      searchService,
		Parser:      search.NewParser(search.Limits{DefaultLimit: cfg.Search.DefaultLimit, MaxLimit: cfg.Search.MaxLimit}),
		Reporter:    reporter,
		Offers:      docs,
		Users:       docs,
		Auth:        auth.NewAuthenticator(tokens, revocations, errs, log),
		Tokens:      tokens,
		Revoker:     revocations,
		Errors:      errs,
		Logger:      log,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	apiServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	opsServer := &http.Server{
		Addr: cfg.Server.MetricsAddress,
		Handler: api.NewOpsMux(cfg.App.Name, cfg.App.Version, map[string]api.Pinger{
			"elasticsearch": esClient,
			"redis":         redis,
		}),
		ReadTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 2)
	for name, srv := range map[string]*http.Server{"api": apiServer, "ops": opsServer} {
		go func() {
			zapLog.Info("HTTP server listening", zap.String("server", name), zap.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("%s server: %w", name, err)
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, stopping servers...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		zapLog.Error("HTTP server failed, stopping", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("api server shutdown incomplete", zap.Error(err))
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("ops server shutdown incomplete", zap.Error(err))
	}
	zapLog.Info("Jobboard api stopped")
}
