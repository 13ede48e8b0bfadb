package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/database/redis"
)

// MemoryStore is an in-process session store that behaves like the Redis one
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// SetJSON stores value as JSON. Expiration is ignored.
func (s *MemoryStore) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = payload
	return nil
}

// GetJSON decodes the stored value into dest
func (s *MemoryStore) GetJSON(ctx context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.data[key]
	if !ok {
		return redis.ErrNotFound
	}
	return json.Unmarshal(payload, dest)
}

// Expire only checks that the key exists
func (s *MemoryStore) Expire(ctx context.Context, key string, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return redis.ErrNotFound
	}
	return nil
}

// Del removes keys
func (s *MemoryStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}
