package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event operations.
const (
	OpCreated = "created"
	OpDeleted = "deleted"
)

// TransactionEvent is a lightweight notification that the ledger
// changed. It carries only the operation and the record id; consumers
// that need the full record read it back from storage.
type TransactionEvent struct {
	Op        string    `json:"op"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionEvent(op string, id int64) *TransactionEvent {
	return &TransactionEvent{
		Op:        op,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// Validate checks that the event carries a known operation.
func (e *TransactionEvent) Validate() error {
	switch e.Op {
	case OpCreated, OpDeleted:
		return nil
	default:
		return fmt.Errorf("unknown event op %q", e.Op)
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
