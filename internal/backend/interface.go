package backend

import (
	"context"

	"onlyfunds/internal/remote"
)

// Backend is the unified data backend: everything the services need to
// fetch and persist budgets and transactions.
type Backend = remote.Provider

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Appwrite specific
	AppwriteEndpoint               string
	AppwriteProjectID              string
	AppwriteAPIKey                 string
	AppwriteDatabaseID             string
	AppwriteBudgetsCollection      string
	AppwriteTransactionsCollection string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	AppwriteBackend BackendType = "appwrite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, AppwriteBackend:
		return true
	default:
		return false
	}
}
