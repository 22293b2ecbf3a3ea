package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) *LocalArtifactStorage {
	t.Helper()
	store, err := NewLocalArtifactStorage(t.TempDir(), "http://localhost:8080", nil)
	require.NoError(t, err)
	return store
}

func TestLocalArtifactStorage_UploadAndExists(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	err := store.Upload(ctx, "tenants/a/labels/b.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	exists, err := store.ObjectExists(ctx, "tenants/a/labels/b.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := os.ReadFile(filepath.Join(store.Root(), "tenants", "a", "labels", "b.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestLocalArtifactStorage_ObjectExists_Missing(t *testing.T) {
	store := newLocalStore(t)

	exists, err := store.ObjectExists(context.Background(), "nothing/here.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalArtifactStorage_GenerateDownloadURL(t *testing.T) {
	store := newLocalStore(t)

	url, expiresAt, err := store.GenerateDownloadURL(context.Background(), "tenants/a/labels/b.pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/artifacts/tenants/a/labels/b.pdf", url)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)
}

func TestLocalArtifactStorage_Delete(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "a.pdf", []byte("x"), "application/pdf"))
	require.NoError(t, store.DeleteObject(ctx, "a.pdf"))

	exists, err := store.ObjectExists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error
	require.NoError(t, store.DeleteObject(ctx, "a.pdf"))
}

func TestLocalArtifactStorage_RejectsTraversal(t *testing.T) {
	store := newLocalStore(t)

	err := store.Upload(context.Background(), "../escape.pdf", []byte("x"), "application/pdf")
	assert.Error(t, err)
}

func TestLocalArtifactStorage_RejectsEmptyKey(t *testing.T) {
	store := newLocalStore(t)

	err := store.Upload(context.Background(), "", nil, "")
	assert.Error(t, err)
}
