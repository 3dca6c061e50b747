package backend

import (
	"context"

	"expensetracker/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func(ctx context.Context) error

// Pinger is implemented by slots backed by a server or file handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SlotResult contains the slot instance and optional cleanup function
type SlotResult struct {
	Slot    storage.Slot
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *SlotResult) Close(ctx context.Context) error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup(ctx)
}

// Ping checks the slot when it supports it. In-process slots are always ready.
func (r *SlotResult) Ping(ctx context.Context) error {
	if p, ok := r.Slot.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Factory creates slots based on configuration
type Factory interface {
	CreateSlot(ctx context.Context, config Config) (*SlotResult, error)
}

// Config holds configuration for slot creation
type Config struct {
	Type BackendType

	// File specific
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string

	// MongoDB specific
	MongoURI        string
	MongoDB         string
	MongoCollection string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
	MongoBackend  BackendType = "mongo"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend, MongoBackend:
		return true
	default:
		return false
	}
}
