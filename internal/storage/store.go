package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"expensetracker/internal/core"
)

// Store persists the whole expense collection as one JSON array in a Slot.
type Store struct {
	slot Slot
	key  string
}

func NewStore(slot Slot, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{slot: slot, key: key}
}

func (s *Store) Key() string {
	return s.key
}

// Load reads the collection. An empty slot yields the seed expenses.
//
// When the stored value cannot be decoded Load returns the seed together
// with an error wrapping ErrCorruptData, so callers can report the problem
// and keep going.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrSlotEmpty) {
		return core.Seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}

	expenses, err := Decode(raw)
	if err != nil {
		return core.Seed(), err
	}
	return expenses, nil
}

// Save overwrites the slot with the full collection. Empty collections are
// written as [] so that deleting everything survives a reload.
func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	raw, err := Encode(expenses)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

// Encode serializes expenses to the persisted wire form.
func Encode(expenses []core.Expense) ([]byte, error) {
	if expenses == nil {
		expenses = []core.Expense{}
	}
	raw, err := json.Marshal(expenses)
	if err != nil {
		return nil, fmt.Errorf("encode expenses: %w", err)
	}
	return raw, nil
}

// Decode parses the persisted wire form.
func Decode(raw []byte) ([]core.Expense, error) {
	var expenses []core.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return expenses, nil
}
