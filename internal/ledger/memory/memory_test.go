package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func newTx(desc string) core.Transaction {
	return core.Transaction{
		Description: desc,
		Amount:      core.Money{Cents: 100},
		Type:        core.Expense,
		Date:        core.NewDate(2026, 2, 23),
	}
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.Append(ctx, newTx("first"))
	require.NoError(t, err)
	second, err := store.Append(ctx, newTx("second"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Append(ctx, core.Transaction{})
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestIDsNeverReusedAfterRemove(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Append(ctx, newTx("first"))
	require.NoError(t, err)
	second, err := store.Append(ctx, newTx("second"))
	require.NoError(t, err)

	removed, err := store.Remove(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, removed)

	third, err := store.Append(ctx, newTx("third"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID, "removed id must not be reissued")
}

func TestRemoveMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Append(ctx, newTx("only"))
	require.NoError(t, err)

	removed, err := store.Remove(ctx, 999)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, store.Len())
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := New()

	for _, desc := range []string{"a", "b", "c"} {
		_, err := store.Append(ctx, newTx(desc))
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].Description)
	assert.Equal(t, "b", records[1].Description)
	assert.Equal(t, "c", records[2].Description)
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Append(ctx, newTx("original"))
	require.NoError(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	records[0].Description = "mutated"

	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Description)
}
