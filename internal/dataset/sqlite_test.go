package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	payload := []byte(`{"success": true, "results": []}`)
	require.NoError(t, store.PutSnapshot(ctx, "analyze", payload))

	got, err := store.GetSnapshot(ctx, "analyze")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.PutSnapshot(ctx, "analyze", []byte("old")))
	require.NoError(t, store.PutSnapshot(ctx, "analyze", []byte("new")))

	got, err := store.GetSnapshot(ctx, "analyze")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"analyze"}, keys)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	store := newTestSQLite(t)

	_, err := store.GetSnapshot(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteStore_ListKeysSorted(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	for _, k := range []string{"trend-analysis", "analyze", "risk-analysis"} {
		require.NoError(t, store.PutSnapshot(ctx, k, []byte("{}")))
	}

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"analyze", "risk-analysis", "trend-analysis"}, keys)
}

func TestSQLiteStore_AsSource(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.PutSnapshot(ctx, "analyze",
		[]byte(`[{"area_id": "10001", "value": 1.0}]`)))

	src := NewStoreSource("snapshot:sqlite", store)
	ds, err := src.Load(ctx, "analyze")
	require.NoError(t, err)
	assert.True(t, ds.Success)
	assert.Len(t, ds.Results, 1)
}
