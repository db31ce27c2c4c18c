package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUploaded(t *testing.T) {
	assert.True(t, IsUploaded("uploads/0b3795e5-6efc-4c12-9cb2-6e08c9c86a6f.jpg"))
	assert.False(t, IsUploaded("beach-hero.jpg"))
	assert.False(t, IsUploaded("images/stock/ella.png"))
	assert.False(t, IsUploaded(""))
}

func TestObjectNameExtensionHandling(t *testing.T) {
	for orig, wantExt := range map[string]string{
		"photo.JPG":    ".jpg",
		"photo.png":    ".png",
		"photo.webp":   ".webp",
		"photo.svg":    ".jpg",
		"photo":        ".jpg",
		"../../etc.sh": ".jpg",
	} {
		ref := objectName(orig)
		assert.True(t, IsUploaded(ref), orig)
		assert.Equal(t, wantExt, filepath.Ext(ref), orig)
	}
}

func TestLocalStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "beach.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, IsUploaded(ref))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, store.Remove(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreRemoveIgnoresStockRefs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	stock := filepath.Join(dir, "stock.jpg")
	require.NoError(t, os.WriteFile(stock, []byte("x"), 0o644))

	require.NoError(t, store.Remove(context.Background(), "stock.jpg"))
	_, err = os.Stat(stock)
	assert.NoError(t, err)
}

func TestLocalStoreRemoveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, store.Remove(context.Background(), "uploads/../secret.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestLocalStoreRemoveMissingFileIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "uploads/never-existed.jpg"))
}
