package services

import (
	"context"
	"testing"

	"tally/internal/core"
	"tally/internal/ledger/memory"
)

// Without an AMQP client the service must behave exactly like the bare
// store.
func TestLedgerServiceWithoutEvents(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(memory.New(), nil)
	defer svc.Close()

	stored, err := svc.Append(ctx, core.Transaction{
		Description: "coffee",
		Amount:      core.Money{Cents: 450},
		Type:        core.Expense,
		Date:        core.NewDate(2026, 2, 23),
	})
	if err != nil {
		t.Fatalf("Append error = %v", err)
	}
	if stored.ID != 1 {
		t.Errorf("id = %d, want 1", stored.ID)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	removed, err := svc.Remove(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if !removed {
		t.Error("Remove = false, want true")
	}

	removed, err = svc.Remove(ctx, 999)
	if err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if removed {
		t.Error("Remove(missing) = true, want false")
	}
}

func TestLedgerServiceAppendPropagatesValidation(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)
	defer svc.Close()

	if _, err := svc.Append(context.Background(), core.Transaction{}); err == nil {
		t.Error("expected error for invalid record")
	}
}
