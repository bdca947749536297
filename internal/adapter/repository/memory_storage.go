package repository

import (
	"context"
	"fmt"
	"sync"

	"resume-maker/internal/domain"
)

// MemoryStorage is a process-local Storage. A positive quota caps the summed
// size of all values.
type MemoryStorage struct {
	quota int

	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage(quota int) *MemoryStorage {
	return &MemoryStorage{quota: quota, data: map[string]string{}}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quota > 0 {
		used := 0
		for k, v := range s.data {
			if k != key {
				used += len(v)
			}
		}
		if used+len(value) > s.quota {
			return fmt.Errorf("write %s (%d bytes): %w", key, len(value), domain.ErrQuotaExceeded)
		}
	}
	s.data[key] = value
	return nil
}
