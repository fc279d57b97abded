package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fskogh/lingai/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestSetGetRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := openTestKV(t)

	require.NoError(t, kv.Set(ctx, store.KeyWords, []byte(`[{"german":"Haus"}]`)))

	got, err := kv.Get(ctx, store.KeyWords)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"german":"Haus"}]`), got)
}

func TestSetReplacesValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := openTestKV(t)

	require.NoError(t, kv.Set(ctx, store.KeyPassages, []byte("one")))
	require.NoError(t, kv.Set(ctx, store.KeyPassages, []byte("two")))

	got, err := kv.Get(ctx, store.KeyPassages)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()
	kv := openTestKV(t)

	_, err := kv.Get(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := openTestKV(t)

	require.NoError(t, kv.Set(ctx, store.KeyReadingSessions, []byte("[]")))
	require.NoError(t, kv.Delete(ctx, store.KeyReadingSessions))
	require.NoError(t, kv.Delete(ctx, store.KeyReadingSessions))

	_, err := kv.Get(ctx, store.KeyReadingSessions)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestValuesSurviveReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	kv, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, store.KeyWords, []byte("persisted")))
	require.NoError(t, kv.Close())

	kv, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()

	got, err := kv.Get(ctx, store.KeyWords)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), got)
}
