// Package memory keeps the latest mirrored snapshot in process memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/sheets"
)

type Mirror struct {
	mu     sync.Mutex
	latest []core.Expense
	writes int
}

var _ sheets.SnapshotWriter = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) WriteSnapshot(_ context.Context, expenses []core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = slices.Clone(expenses)
	m.writes++
	return nil
}

// Latest returns the last written snapshot and how many writes happened.
func (m *Mirror) Latest() ([]core.Expense, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.latest), m.writes
}
