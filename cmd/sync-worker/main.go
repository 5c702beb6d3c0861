package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onlyfunds/internal/amqp"
	"onlyfunds/internal/cli"
	"onlyfunds/internal/remote/appwrite"
	"onlyfunds/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	logger.Info("Starting sync-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// Local database holding the rows to push
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Remote provider to push to (optional)
	var remoteClient *appwrite.Client
	if cfg.AppwriteEndpoint != "" {
		remoteClient = appwrite.New(appwrite.Config{
			Endpoint:               cfg.AppwriteEndpoint,
			ProjectID:              cfg.AppwriteProjectID,
			APIKey:                 cfg.AppwriteAPIKey,
			DatabaseID:             cfg.AppwriteDatabaseID,
			BudgetsCollectionID:    cfg.AppwriteBudgetsCollection,
			TransactionsCollection: cfg.AppwriteTransactionsCollection,
		})
		logger.Info("Appwrite client initialized",
			"endpoint", cfg.AppwriteEndpoint,
			"database_id", cfg.AppwriteDatabaseID)
	} else {
		logger.Info("Appwrite disabled - no APPWRITE_ENDPOINT provided")
	}

	// AMQP client for consuming sync messages
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var syncWorker *worker.SyncWorker
	if remoteClient != nil {
		syncWorker = worker.NewSyncWorker(repo, remoteClient, cfg.SyncBatchSize)

		// On startup, process any pending rows that might have been missed
		logger.Info("Performing startup sync check...")
		if err := syncWorker.StartupSyncCheck(ctx); err != nil {
			logger.Error("Failed startup sync check", "error", err)
			// Don't exit - continue with normal operation
		}
	} else {
		logger.Info("Skipping remote sync operations - no client available")
	}

	if syncWorker != nil {
		go func() {
			err := amqpClient.ConsumeSync(ctx, func(msg *amqp.SyncMessage) error {
				return syncWorker.HandleSyncMessage(ctx, msg)
			})
			if err != nil && err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}()

		// Periodic scan for rows whose messages were lost
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := syncWorker.ProcessPending(ctx); err != nil {
						logger.Error("Periodic sync failed", "error", err)
					}
				}
			}
		}()
	} else {
		logger.Info("Skipping AMQP message consumption - no sync worker available")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(5 * time.Second):
		logger.Info("Worker shutdown complete")
	}
}
