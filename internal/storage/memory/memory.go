package memory

import (
	"context"
	"sync"

	"expensetracker/internal/storage"
)

// Slot keeps values in process memory. Nothing survives a restart.
type Slot struct {
	mu     sync.Mutex
	values map[string][]byte
}

var _ storage.Slot = (*Slot)(nil)

func New() *Slot {
	return &Slot{values: map[string][]byte{}}
}

func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *Slot) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
