package backend

import (
	"fmt"

	"onlyfunds/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		AppwriteEndpoint:               appConfig.AppwriteEndpoint,
		AppwriteProjectID:              appConfig.AppwriteProjectID,
		AppwriteAPIKey:                 appConfig.AppwriteAPIKey,
		AppwriteDatabaseID:             appConfig.AppwriteDatabaseID,
		AppwriteBudgetsCollection:      appConfig.AppwriteBudgetsCollection,
		AppwriteTransactionsCollection: appConfig.AppwriteTransactionsCollection,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
		// AMQP is optional, so we don't validate it

	case AppwriteBackend:
		if c.AppwriteEndpoint == "" {
			return fmt.Errorf("Appwrite endpoint is required for appwrite backend")
		}
		if c.AppwriteProjectID == "" {
			return fmt.Errorf("Appwrite project ID is required for appwrite backend")
		}
		if c.AppwriteAPIKey == "" {
			return fmt.Errorf("Appwrite API key is required for appwrite backend")
		}
		if c.AppwriteDatabaseID == "" {
			return fmt.Errorf("Appwrite database ID is required for appwrite backend")
		}

	case MemoryBackend:
		// Memory backend doesn't require additional configuration
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, SQLiteBackend, AppwriteBackend}
}
