package storage

import (
	"context"
	"errors"
)

// DefaultKey is the slot key the expense collection lives under.
const DefaultKey = "expenses"

var (
	// ErrSlotEmpty is returned by Slot.Get when nothing is stored under the key.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrCorruptData reports a stored value that could not be decoded.
	ErrCorruptData = errors.New("corrupt expense data")
)

// Slot is a single-value key-value store. Put fully overwrites the value.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
