// Package worker exports the ledger to a flat JSON file.
//
// The export is rebuilt from storage on every event rather than patched
// incrementally, so a lost message can only delay an export, never
// corrupt one. A periodic rebuild covers the lost-message case.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
)

// ExportWorker consumes ledger events and writes a JSON snapshot of the
// full ledger to a file.
type ExportWorker struct {
	store ledger.Store
	path  string
}

func NewExportWorker(store ledger.Store, path string) *ExportWorker {
	return &ExportWorker{
		store: store,
		path:  path,
	}
}

// snapshot is the exported file shape.
type snapshot struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	Count        int              `json:"count"`
	IncomeCents  int64            `json:"income_cents"`
	ExpenseCents int64            `json:"expense_cents"`
	BalanceCents int64            `json:"balance_cents"`
	Transactions []snapshotRecord `json:"transactions"`
}

type snapshotRecord struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// HandleEvent processes a single transaction event by rebuilding the
// snapshot.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"op", event.Op,
		"id", event.ID)
	return w.WriteSnapshot(ctx)
}

// WriteSnapshot reads the full ledger and writes the export file
// atomically (temp file + rename).
func (w *ExportWorker) WriteSnapshot(ctx context.Context) error {
	records, err := w.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}
	sum := core.Summarize(records)

	snap := snapshot{
		GeneratedAt:  time.Now().UTC(),
		Count:        len(records),
		IncomeCents:  sum.Income.Cents,
		ExpenseCents: sum.Expense.Cents,
		BalanceCents: sum.Balance.Cents,
		Transactions: make([]snapshotRecord, len(records)),
	}
	for i, t := range records {
		snap.Transactions[i] = snapshotRecord{
			ID:          t.ID,
			Description: t.Description,
			AmountCents: t.Amount.Cents,
			Type:        string(t.Type),
			Date:        t.Date.ISO(),
			CreatedAt:   t.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Ledger snapshot exported",
		"path", w.path,
		"count", snap.Count,
		"balance_cents", snap.BalanceCents)

	return nil
}
