package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Operations carried by sync messages.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// SyncMessage schedules one local row for a push to the remote provider.
// It carries only the entity, id and version; the worker loads the full row
// from the local database.
type SyncMessage struct {
	Entity    string    `json:"entity"` // "budget" or "transaction"
	Op        string    `json:"op"`     // "upsert" or "delete"
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSyncMessage creates a sync message for a local row.
func NewSyncMessage(entity, op string, id, version int64) *SyncMessage {
	return &SyncMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// Validate checks the message fields before handling.
func (m *SyncMessage) Validate() error {
	if m.Entity != "budget" && m.Entity != "transaction" {
		return fmt.Errorf("unknown entity %q", m.Entity)
	}
	if m.Op != OpUpsert && m.Op != OpDelete {
		return fmt.Errorf("unknown op %q", m.Op)
	}
	if m.ID <= 0 {
		return fmt.Errorf("invalid id %d", m.ID)
	}
	return nil
}

// ToJSON converts the message to JSON bytes.
func (m *SyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncMessageFromJSON creates a message from JSON bytes.
func SyncMessageFromJSON(data []byte) (*SyncMessage, error) {
	var msg SyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
