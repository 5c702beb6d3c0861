package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"onlyfunds/internal/adapters"
	"onlyfunds/internal/backend"
	"onlyfunds/internal/cli"
	apphttp "onlyfunds/internal/http"
	"onlyfunds/internal/services"
	"onlyfunds/internal/storage"
	"onlyfunds/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	if err := backendConfig.Validate(); err != nil {
		logger.Error("Backend configuration validation failed", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backendConfig)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	// The sqlite backend exposes its repository so recurring endpoints
	// can be mounted.
	var repo *storage.Repository
	if local, ok := result.Backend.(*adapters.LocalBackend); ok {
		repo = local.Repo()
	}

	stores := store.NewRegistry()
	budgets := services.NewBudgetService(stores, result.Backend)
	transactions := services.NewTransactionService(stores, result.Backend)
	refresher := services.NewRefresher(stores, result.Backend)

	srv := apphttp.NewServer(":"+cfg.Port, stores, budgets, transactions, refresher, repo)

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
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	logger.Info("Starting onlyfunds server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
