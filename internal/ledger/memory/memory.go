// Package memory provides the in-memory ledger store, the default
// backend for lab use. State lives for the life of the process only.
package memory

import (
	"context"
	"sync"
	"time"

	"tally/internal/core"
)

type Store struct {
	mu     sync.Mutex
	items  []core.Transaction
	nextID int64
}

// New creates an empty store. The store is constructed once per
// application instance and passed by handle; there is no ambient
// global state.
func New() *Store {
	return &Store{nextID: 1}
}

// Append implements ledger.Store. The counter only ever moves forward,
// so ids are never reused after a removal.
func (s *Store) Append(_ context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = time.Now().UTC()
	s.items = append(s.items, t)
	return t, nil
}

// Remove implements ledger.Store.
func (s *Store) Remove(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// List implements ledger.Store. It returns a copy so callers never hold
// a mutable reference into the store's collection.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Len returns the current record count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
