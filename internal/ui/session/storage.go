package session

import (
	"context"
	"slices"
	"sync"
)

// Storage is the durable key-value storage that the session is mirrored to.
// Each implementation holds a single entry (the StorageKey namespace).
//
// Load returns ErrNoSession when there is no entry. Remove on a missing entry is not an error.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// MemoryStorage keeps the entry in process memory (SESSION_BACKEND=memory and tests)
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrNoSession
	}
	return slices.Clone(m.data), nil
}

func (m *MemoryStorage) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = slices.Clone(data)
	return nil
}

func (m *MemoryStorage) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	return nil
}
