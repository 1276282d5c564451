// Package ledger defines the port for transaction stores.
package ledger

import (
	"context"

	"tally/internal/core"
)

// Store owns the ordered collection of transaction records and the id
// sequence. Ids are unique for the lifetime of a store and are never
// reused, even after a removal.
type Store interface {
	// Append assigns the next unused id, stamps CreatedAt and appends the
	// record, returning it with both fields set. Validation of the input
	// is the caller's responsibility.
	Append(ctx context.Context, t core.Transaction) (core.Transaction, error)

	// Remove deletes the record with the given id. Removing an id that
	// does not exist is a no-op, reported through the boolean rather than
	// an error.
	Remove(ctx context.Context, id int64) (bool, error)

	// List returns the records in insertion order. Callers needing
	// newest-first must reverse explicitly; that is a presentation
	// concern, not a store concern.
	List(ctx context.Context) ([]core.Transaction, error)
}
