// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradedesk/internal/config"
	"tradedesk/internal/handlers"
	"tradedesk/internal/logger"
	"tradedesk/internal/repositories"
	"tradedesk/internal/repositories/cache"
	"tradedesk/internal/routes"
	"tradedesk/internal/services/balance"
	"tradedesk/internal/services/fee"
	"tradedesk/internal/utils"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	fingerprints, generated, err := newFingerprinter(cfg.Balance.MaskKey, config.IsProduction())
	if err != nil {
		log.Error("failed to set up account fingerprints", "error", err)
		os.Exit(1)
	}
	if generated {
		log.Warn("MASK_KEY is not set; using a random per-process key, account refs will not match across restarts")
	}

	feeConfig, err := fee.ConfigFromStrings(cfg.Fee.Rate, cfg.Fee.Scale)
	if err != nil {
		log.Error("invalid fee configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := repositories.Open(cfg.DB)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", "error", err)
		}
	}()
	store := repositories.NewAccountStore(db)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		cancel()
		log.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	cancel()
	log.Info("connected to database")

	// Redis is optional; without it balances are always read from the store.
	var balanceCache repositories.BalanceCache = cache.NoopCache{}
	var cachePinger handlers.Pinger
	if cfg.Redis.Enabled() {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis connection", "error", err)
			}
		}()
		redisCache := cache.NewBalanceService(client, cfg.Redis.TTL)
		balanceCache = redisCache
		cachePinger = redisCache
		log.Info("balance cache enabled", "addr", cfg.Redis.Host+":"+cfg.Redis.Port)
	}

	balanceService := balance.NewService(
		store,
		balanceCache,
		fingerprints,
		balance.Config{StoreTimeout: cfg.Balance.StoreTimeout},
		log,
		&balance.NoopMetricsCollector{},
	)

	app := routes.NewApp()
	routes.SetupMiddleware(app, cfg.Server)
	routes.SetupRoutes(app, routes.Dependencies{
		Server:   cfg.Server,
		Fees:     fee.NewCalculator(feeConfig),
		Balances: balanceService,
		Store:    store,
		Cache:    cachePinger,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warn("graceful shutdown failed", "error", err)
		}
	}()

	log.Info("starting server", "port", cfg.Server.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Error("server stopped", "error", err)
	}
}

// newFingerprinter keys account fingerprints with maskKey. Without one it
// fails in production and otherwise falls back to a random key, so logged
// refs cannot be brute-forced from the small account number space.
func newFingerprinter(maskKey string, production bool) (*utils.Fingerprinter, bool, error) {
	if maskKey != "" {
		return utils.NewFingerprinter(maskKey), false, nil
	}
	if production {
		return nil, false, errors.New("MASK_KEY must be set in production")
	}
	f, err := utils.NewRandomFingerprinter()
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}
