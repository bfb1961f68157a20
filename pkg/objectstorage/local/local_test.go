package local_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpora-ai/corpora/pkg/objectstorage"
	"github.com/corpora-ai/corpora/pkg/objectstorage/local"
)

func TestLocalRoundTrip(t *testing.T) {
	store, err := local.New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key := "tenant-a/blobs/deadbeef"

	require.NoError(t, store.Upload(ctx, key, []byte("hello blob")))

	obj, err := store.GetObject(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello blob"), obj.Data)
	assert.NotEmpty(t, obj.Mime)

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.GetObject(ctx, key)
	assert.ErrorIs(t, err, objectstorage.ErrNotFound)
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	store, err := local.New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "nope/never"))
}
