package blobs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080", nil)
	require.NoError(t, err)
	return store
}

func TestDiskStore_PutAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte{0xFF, 0xD8, 0xFF}
	url, err := store.Put(ctx, "posts/user-1/photo.jpg", data, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/blobs/posts/user-1/photo.jpg", url)

	onDisk, err := os.ReadFile(filepath.Join(store.Root(), "posts", "user-1", "photo.jpg"))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, onDisk))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(store.Root(), "posts", "user-1", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_PutOverwritesSameKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "avatars/user-1.jpg", []byte{0x01}, "image/jpeg")
	require.NoError(t, err)
	url, err := store.Put(ctx, "avatars/user-1.jpg", []byte{0x02, 0x03}, "image/jpeg")
	require.NoError(t, err)

	onDisk, err := os.ReadFile(filepath.Join(store.Root(), "avatars", "user-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, onDisk)
	assert.Equal(t, "http://localhost:8080/blobs/avatars/user-1.jpg", url)
}

func TestDiskStore_PutValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "k.jpg", nil, "image/jpeg")
	assert.Error(t, err)

	_, err = store.Put(ctx, "k.jpg", make([]byte, maxBlobSize+1), "image/jpeg")
	assert.ErrorIs(t, err, ErrBlobTooLarge)

	_, err = store.Put(ctx, "k.gif", []byte{0x01}, "image/gif")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// image/jpg normalizes instead of failing
	_, err = store.Put(ctx, "k.jpg", []byte{0x01}, "image/jpg")
	assert.NoError(t, err)
}

func TestDiskStore_EscapingKeysStayUnderRoot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Traversal components are normalized away, never escape the root
	_, err := store.Put(ctx, "a/../../outside.jpg", []byte{0x01}, "image/jpeg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(store.Root(), "outside.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(store.Root()), "outside.jpg"))
	assert.True(t, os.IsNotExist(err))

	_, err = store.Put(ctx, "", []byte{0x01}, "image/jpeg")
	assert.Error(t, err)
}

func TestDiskStore_DeleteMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Delete(ctx, "http://localhost:8080/blobs/never/was.jpg")
	assert.ErrorIs(t, err, ErrBlobMissing)

	err = store.Delete(ctx, "http://localhost:8080/elsewhere/x.jpg")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlobMissing)
}
