// Package sqlite keeps slot values in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"expensetracker/internal/storage"

	_ "modernc.org/sqlite"
)

type Slot struct {
	db *sql.DB
}

var _ storage.Slot = (*Slot)(nil)

func New(dbPath string) (*Slot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Slot{db: db}, nil
}

func (s *Slot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return value, nil
}

func (s *Slot) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}

	slog.DebugContext(ctx, "Slot saved to SQLite", "key", key, "bytes", len(value))
	return nil
}

// Ping reports whether the database is reachable.
func (s *Slot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
