// Package file_store keeps uploaded media (cover images, slide images) and
// deletes it when the owning document goes away.
package file_store

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type MediaStore interface {
	// Store uploads body and returns its public url.
	Store(ctx context.Context, fileName string, contentType string, body io.Reader) (url string, err error)
	// Delete removes the object behind url. Urls not owned by the store are
	// ignored.
	Delete(ctx context.Context, url string) error
	// Owns reports whether url points into this store.
	Owns(url string) bool
}

// GenerateKey builds a unique object key keeping the lower cased extension
// of the uploaded file name.
func GenerateKey(prefix string, fileName string) string {
	return prefix + uuid.New().String() + strings.ToLower(path.Ext(fileName))
}

// KeyFromUrl strips publicUrl from url. The second result is false for
// foreign urls.
func KeyFromUrl(publicUrl string, url string) (string, bool) {
	base := strings.TrimSuffix(publicUrl, "/") + "/"
	if publicUrl == "" || !strings.HasPrefix(url, base) {
		return "", false
	}
	key := strings.TrimPrefix(url, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	return key, key != ""
}

// DeleteAll deletes every owned url and returns the first error. Foreign and
// empty urls are skipped.
func DeleteAll(ctx context.Context, store MediaStore, urls []string) error {
	var firstErr error
	for _, url := range urls {
		if url == "" || !store.Owns(url) {
			continue
		}
		if err := store.Delete(ctx, url); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
