package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onlyfunds/internal/adapters"
	"onlyfunds/internal/amqp"
	"onlyfunds/internal/cli"
	"onlyfunds/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	logger.Info("Starting recurring-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// AMQP is optional here: without it, generated transactions still land
	// locally and get picked up by the sync worker's pending scan.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, relying on periodic sync scan", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	}

	local := adapters.NewLocalBackend(repo, amqpClient)
	processor := services.NewRecurringProcessor(repo, local)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Process immediately on startup, then on the configured interval
	runProcessor(ctx, processor, logger)

	ticker := time.NewTicker(cfg.RecurringInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runProcessor(ctx, processor, logger)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	cancel()
	logger.Info("Recurring worker shutdown complete")
}

func runProcessor(ctx context.Context, processor *services.RecurringProcessor, logger *slog.Logger) {
	created, err := processor.ProcessDue(ctx, time.Now())
	if err != nil {
		logger.Error("Recurring processing failed", "error", err)
		return
	}
	if created > 0 {
		logger.Info("Recurring transactions created", "count", created)
	}
}
