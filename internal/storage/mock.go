package storage

import (
	"context"
	"sync"
)

// MockStore records uploads in memory. Used by handler tests.
type MockStore struct {
	mu      sync.Mutex
	Uploads map[string][]byte
	Err     error
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{Uploads: map[string][]byte{}}
}

// UploadImage implements ImageStore.
func (m *MockStore) UploadImage(_ context.Context, dataURL string, folder string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	contentType, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	name := objectName(folder, contentType)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads[name] = data
	return "https://storage.example.com/" + name, nil
}

// Count returns the number of stored images.
func (m *MockStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Uploads)
}
