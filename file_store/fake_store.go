package file_store

import (
	"context"
	"io"
	"io/ioutil"
	"sync"
)

const FakePublicUrl = "https://media.test"

// FakeFileStore keeps objects in memory.
type FakeFileStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{Objects: map[string][]byte{}}
}

func (f *FakeFileStore) Store(ctx context.Context, fileName string, contentType string, body io.Reader) (string, error) {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	key := GenerateKey("uploads/", fileName)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = data
	return FakePublicUrl + "/" + key, nil
}

func (f *FakeFileStore) Delete(ctx context.Context, url string) error {
	key, ok := KeyFromUrl(FakePublicUrl, url)
	if !ok {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Objects, key)
	f.Deleted = append(f.Deleted, url)
	return nil
}

func (f *FakeFileStore) Owns(url string) bool {
	_, ok := KeyFromUrl(FakePublicUrl, url)
	return ok
}

func (f *FakeFileStore) DeletedUrls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.Deleted...)
}
