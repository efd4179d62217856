// Package main is the entry point for the exchange rate source service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ratesource/internal/config"
	"ratesource/internal/currency"
	"ratesource/internal/provider"
	"ratesource/internal/rates"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	rdbCache   *redis.Client // nil when no Redis provider cache is configured
	httpServer *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initCache(); err != nil {
		_ = app.close()
		return nil, err
	}

	app.initServices()

	return app, nil
}

// close releases the Redis connection
func (app *App) close() error {
	if app.rdbCache != nil {
		if err := app.rdbCache.Close(); err != nil {
			return fmt.Errorf("redis cache close: %w", err)
		}
	}
	return nil
}

func (app *App) initCache() error {
	if app.cfg.Redis.CacheAddr == "" {
		app.logger.Infow("Redis provider cache disabled")
		return nil
	}

	app.rdbCache = redis.NewClient(&redis.Options{
		Addr: app.cfg.Redis.CacheAddr,
	})
	if err := app.rdbCache.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("connect to Redis (cache, %s): %w", app.cfg.Redis.CacheAddr, err)
	}
	app.logger.Infow("Connected to Redis cache", "addr", app.cfg.Redis.CacheAddr)

	return nil
}

func (app *App) initServices() {
	rateProvider := newRateProvider(app.cfg, app.rdbCache)
	registry := currency.NewRegistry()
	source := rates.NewSource(rateProvider, registry, app.logger)

	app.initHTTP(source)
}

func newRateProvider(cfg *config.Config, cache *redis.Client) provider.RatesProvider {
	google := provider.NewGoogleCalculatorProvider(cfg.Google.BaseURL, cfg.Google.Timeout)

	if cache == nil {
		return google
	}

	ttl := time.Duration(cfg.Cache.ProviderPriceTTLSec) * time.Second
	return provider.NewCachedRatesProvider(google, cache, ttl, "google_calculator")
}

// Run starts the HTTP server, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or component failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown drains in-flight HTTP requests before closing connections.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
