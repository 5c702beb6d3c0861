package backend

import (
	"context"
	"fmt"
	"log/slog"

	"onlyfunds/internal/adapters"
	"onlyfunds/internal/amqp"
	"onlyfunds/internal/remote/appwrite"
	"onlyfunds/internal/remote/memory"
	"onlyfunds/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case AppwriteBackend:
		return f.createAppwriteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	// AMQP is optional; without it writes stay local until the worker's
	// pending scan pushes them.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	local := adapters.NewLocalBackend(repo, amqpClient)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &BackendResult{
		Backend: local,
		Cleanup: local.Close,
	}, nil
}

func (f *DefaultFactory) createAppwriteBackend(config Config) (*BackendResult, error) {
	client := appwrite.New(appwrite.Config{
		Endpoint:               config.AppwriteEndpoint,
		ProjectID:              config.AppwriteProjectID,
		APIKey:                 config.AppwriteAPIKey,
		DatabaseID:             config.AppwriteDatabaseID,
		BudgetsCollectionID:    config.AppwriteBudgetsCollection,
		TransactionsCollection: config.AppwriteTransactionsCollection,
	})

	f.logger.Info("Initialized Appwrite backend",
		"endpoint", config.AppwriteEndpoint,
		"database_id", config.AppwriteDatabaseID)

	return &BackendResult{
		Backend: client,
		Cleanup: nil, // No cleanup needed for appwrite backend
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	store := memory.New()

	f.logger.Info("Initialized memory backend")

	return &BackendResult{
		Backend: store,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}
