// Package storage provides object storage implementations for document blobs.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	intakeapp "github.com/web2print/backend/internal/application/intake"
)

// MemoryBlobStore is an in-memory BlobStore for development and tests
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// BaseURL is the base URL for generated download URLs
	BaseURL string
}

// NewMemoryBlobStore creates a new MemoryBlobStore
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		objects: make(map[string][]byte),
		BaseURL: "https://storage.example.com",
	}
}

// Ensure MemoryBlobStore implements BlobStore
var _ intakeapp.BlobStore = (*MemoryBlobStore)(nil)

// Upload stores data under the given key
func (m *MemoryBlobStore) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[storageKey] = buf
	return nil
}

// Download fetches the object stored under the given key
func (m *MemoryBlobStore) Download(ctx context.Context, storageKey string) ([]byte, error) {
	if storageKey == "" {
		return nil, errors.New("storage key is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found: " + storageKey)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// GenerateDownloadURL generates a fake download URL
func (m *MemoryBlobStore) GenerateDownloadURL(
	ctx context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := m.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// Delete removes an object
func (m *MemoryBlobStore) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, storageKey)
	return nil
}

// Len returns the number of stored objects
func (m *MemoryBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
