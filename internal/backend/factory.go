package backend

import (
	"context"
	"fmt"

	"expensetracker/internal/log"
	"expensetracker/internal/storage/file"
	"expensetracker/internal/storage/memory"
	"expensetracker/internal/storage/mongo"
	"expensetracker/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default(log.ComponentBackend)
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSlot implements Factory.CreateSlot
func (f *DefaultFactory) CreateSlot(ctx context.Context, config Config) (*SlotResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemorySlot()
	case FileBackend:
		return f.createFileSlot(config)
	case SQLiteBackend:
		return f.createSQLiteSlot(config)
	case MongoBackend:
		return f.createMongoSlot(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemorySlot() (*SlotResult, error) {
	f.logger.Warn("Initialized memory backend, data is lost on restart",
		log.FieldBackend, MemoryBackend)
	return &SlotResult{Slot: memory.New()}, nil
}

func (f *DefaultFactory) createFileSlot(config Config) (*SlotResult, error) {
	slot, err := file.New(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file backend: %w", err)
	}

	f.logger.Info("Initialized file backend",
		log.FieldBackend, FileBackend,
		"data_directory", config.DataDirectory)

	return &SlotResult{Slot: slot}, nil
}

func (f *DefaultFactory) createSQLiteSlot(config Config) (*SlotResult, error) {
	slot, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		log.FieldBackend, SQLiteBackend,
		"db_path", config.SQLiteDBPath)

	return &SlotResult{
		Slot:    slot,
		Cleanup: func(context.Context) error { return slot.Close() },
	}, nil
}

func (f *DefaultFactory) createMongoSlot(ctx context.Context, config Config) (*SlotResult, error) {
	slot, err := mongo.New(ctx, config.MongoURI, config.MongoDB, config.MongoCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB backend: %w", err)
	}

	f.logger.Info("Initialized MongoDB backend",
		log.FieldBackend, MongoBackend,
		"database", config.MongoDB,
		"collection", config.MongoCollection)

	return &SlotResult{
		Slot:    slot,
		Cleanup: slot.Close,
	}, nil
}
