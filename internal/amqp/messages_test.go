package amqp

import "testing"

func TestTransactionEventJSON(t *testing.T) {
	event := NewTransactionEvent(OpCreated, 42)

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := TransactionEventFromJSON(data)
	if err != nil {
		t.Fatalf("TransactionEventFromJSON() error = %v", err)
	}
	if decoded.Op != OpCreated || decoded.ID != 42 {
		t.Errorf("decoded = %+v, want op created, id 42", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestTransactionEventFromJSONRejectsUnknownOp(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte(`{"op":"updated","id":1}`)); err == nil {
		t.Error("expected error for unknown op")
	}
}

func TestTransactionEventFromJSONRejectsMalformed(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte(`{broken`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
