package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLevelDBStore(t *testing.T, path string) *LevelDBMetadataStore {
	t.Helper()

	store, err := NewLevelDBMetadataStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestLevelDBStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newLevelDBStore(t, t.TempDir())

	require.NoError(t, store.Set(ctx, "obj", sampleMeta()))

	got, err := store.Get(ctx, "obj")
	require.NoError(t, err)
	assert.Equal(t, sampleMeta(), *got)
}

func TestLevelDBStoreGetUnknownKey(t *testing.T) {
	store := newLevelDBStore(t, t.TempDir())

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLevelDBStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := newLevelDBStore(t, t.TempDir())

	require.NoError(t, store.Set(ctx, "obj", sampleMeta()))
	require.NoError(t, store.Remove(ctx, "obj"))

	_, err := store.Get(ctx, "obj")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	assert.NoError(t, store.Remove(ctx, "obj"))
}

func TestLevelDBStoreAll(t *testing.T) {
	ctx := context.Background()
	store := newLevelDBStore(t, t.TempDir())

	require.NoError(t, store.Set(ctx, "b", sampleMeta()))
	require.NoError(t, store.Set(ctx, "a", sampleMeta()))

	keys, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestLevelDBStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLevelDBMetadataStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "obj", sampleMeta()))
	require.NoError(t, store.Close())

	reopened := newLevelDBStore(t, dir)
	got, err := reopened.Get(ctx, "obj")
	require.NoError(t, err)
	assert.Equal(t, sampleMeta(), *got)
}
