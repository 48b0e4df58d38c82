package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/pkg/config"
)

func newTestStore(t *testing.T) (*localStore, string) {
	t.Helper()

	dir := t.TempDir()
	store := newLocalStore(&config.StorageConfig{
		LocalDir:  dir,
		PublicURL: "/uploads",
	})
	return store, dir
}

func TestLocalPutReturnsPublicPath(t *testing.T) {
	store, dir := newTestStore(t)

	path, err := store.Put("photo.jpg", []byte("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/photo.jpg", path)

	content, err := os.ReadFile(filepath.Join(dir, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), content)
	assert.True(t, store.Exists(path))
}

func TestLocalDelete(t *testing.T) {
	store, _ := newTestStore(t)

	path, err := store.Put("photo.jpg", []byte("jpeg bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(path))
	assert.False(t, store.Exists(path))

	// Deleting again reports the missing file.
	assert.Error(t, store.Delete(path))
}

func TestLocalRejectsPathEscape(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Delete("/uploads/../../etc/passwd")
	assert.Error(t, err)
	assert.False(t, store.Exists("/uploads/../secret"))
}
