package cache

import (
	"context"
	"sync"
	"time"
)

// entry is never mutated after creation; Put swaps in a new one.
type entry struct {
	value    []byte
	storedAt time.Time
}

// MemoryStore is an in-process Cache. With a size cap set, the entry stored
// longest ago is evicted to make room.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]*entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithMaxEntries caps the number of stored keys. Zero means unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]*entry),
		ttl:  TTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		return nil, false
	}
	return append([]byte(nil), e.value...), true
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) {
	e := &entry{
		value:    append([]byte(nil), value...),
		storedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[key]; !exists && s.maxEntries > 0 && len(s.data) >= s.maxEntries {
		s.evictOldest()
	}
	s.data[key] = e
}

// Len reports the number of physically stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range s.data {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey = key
			oldest = e.storedAt
		}
	}
	if oldestKey != "" {
		delete(s.data, oldestKey)
	}
}
