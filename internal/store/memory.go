package store

import (
	"sync"

	"studentms/internal/model"
)

// MemoryStore keeps the table in process memory. It backs tests and
// ephemeral runs. Snapshots are copied on the way in and out so
// callers never alias the stored slice.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Student
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: []model.Student{}}
}

func (s *MemoryStore) Load() ([]model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Student, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Save(records []model.Student) error {
	in := make([]model.Student, len(records))
	copy(in, records)

	s.mu.Lock()
	s.records = in
	s.mu.Unlock()
	return nil
}
