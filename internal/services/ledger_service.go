package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
)

// LedgerService orchestrates the ledger store and the optional AMQP
// event stream. The local write always comes first; publishing is
// best-effort and never fails the request.
type LedgerService struct {
	store  ledger.Store
	events *amqp.Client
}

func NewLedgerService(store ledger.Store, events *amqp.Client) *LedgerService {
	return &LedgerService{
		store:  store,
		events: events,
	}
}

// Append stores a validated transaction and publishes a created event.
func (s *LedgerService) Append(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	stored, err := s.store.Append(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	if err := s.publish(ctx, amqp.OpCreated, stored.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish created event",
			"id", stored.ID, "error", err)
		// The record is saved locally; the export worker has a
		// periodic catch-up path.
	}

	return stored, nil
}

// Remove deletes by id and publishes a deleted event when a record was
// actually removed. Removing a missing id stays a quiet no-op.
func (s *LedgerService) Remove(ctx context.Context, id int64) (bool, error) {
	removed, err := s.store.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("remove transaction: %w", err)
	}
	if !removed {
		return false, nil
	}

	if err := s.publish(ctx, amqp.OpDeleted, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish deleted event",
			"id", id, "error", err)
	}

	return true, nil
}

// List returns the records in insertion order.
func (s *LedgerService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.List(ctx)
}

func (s *LedgerService) publish(ctx context.Context, op string, id int64) error {
	if s.events == nil {
		return nil
	}
	return s.events.PublishTransactionEvent(ctx, op, id)
}

// Close releases the AMQP connection, if any. The store's lifetime is
// managed by the backend factory that created it.
func (s *LedgerService) Close() error {
	if s.events != nil {
		return s.events.Close()
	}
	return nil
}
