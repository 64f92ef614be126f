package file_store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	k := GenerateKey("uploads/", "Cover.JPG")
	assert.True(t, strings.HasPrefix(k, "uploads/"))
	assert.True(t, strings.HasSuffix(k, ".jpg"))
	assert.NotEqual(t, k, GenerateKey("uploads/", "Cover.JPG"))

	assert.False(t, strings.Contains(GenerateKey("", "noext"), "."))
}

func TestKeyFromUrl(t *testing.T) {
	key, ok := KeyFromUrl("https://cdn.maag.fr", "https://cdn.maag.fr/uploads/a.png?v=2")
	assert.True(t, ok)
	assert.Equal(t, "uploads/a.png", key)

	_, ok = KeyFromUrl("https://cdn.maag.fr/", "https://cdn.maag.fr/uploads/a.png")
	assert.True(t, ok)

	_, ok = KeyFromUrl("https://cdn.maag.fr", "https://cdn.maag.fr.evil.com/a.png")
	assert.False(t, ok)
	_, ok = KeyFromUrl("https://cdn.maag.fr", "https://cdn.maag.fr/")
	assert.False(t, ok)
	_, ok = KeyFromUrl("", "https://cdn.maag.fr/a.png")
	assert.False(t, ok)
}

func TestFakeFileStoreAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewFakeFileStore()

	url, err := store.Store(ctx, "photo.png", "image/png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, store.Owns(url))
	assert.Len(t, store.Objects, 1)

	foreign := "https://elsewhere.com/photo.png"
	require.NoError(t, DeleteAll(ctx, store, []string{url, foreign, ""}))
	assert.Equal(t, []string{url}, store.DeletedUrls())
	assert.Len(t, store.Objects, 0)
}
