package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndApplied(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	applied, err := store.Applied(ctx, 7)
	require.NoError(t, err)
	assert.False(t, applied)

	rec, err := store.Record(ctx, 7, "Physiotherapist", 99)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.JobID)
	assert.Equal(t, "submitted", rec.Status)

	applied, err = store.Applied(ctx, 7)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestListMostRecentFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, 1, "First", 10)
	require.NoError(t, err)
	_, err = store.Record(ctx, 2, "Second", 11)
	require.NoError(t, err)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, records[0].SubmittedAt.Before(records[1].SubmittedAt))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Record(context.Background(), 3, "Keep", 1)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// reopening keeps existing rows
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
