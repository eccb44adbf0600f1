package sequence

import (
	"context"
	"sync"
)

// MemoryStore keeps per-session counters in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: map[string]uint64{}}
}

func (s *MemoryStore) Next(_ context.Context, session string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[session]++
	return s.counters[session], nil
}

func (s *MemoryStore) Latest(_ context.Context, session string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters[session], nil
}
