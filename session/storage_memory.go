package session

import (
	"context"
	"sync"
)

// StorageMemory implements in-memory session storage.
// Goroutine-safe.
type StorageMemory struct {
	mux  sync.RWMutex
	data []byte
}

// LoadSession loads session from memory.
func (s *StorageMemory) LoadSession(_ context.Context) ([]byte, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	s.mux.RLock()
	defer s.mux.RUnlock()

	if len(s.data) == 0 {
		return nil, ErrNotFound
	}
	cpy := make([]byte, len(s.data))
	copy(cpy, s.data)
	return cpy, nil
}

// StoreSession stores session to memory.
func (s *StorageMemory) StoreSession(_ context.Context, data []byte) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}
