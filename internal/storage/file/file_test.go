package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"expensetracker/internal/storage"
)

func TestFileSlotGetPut(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := s.Get(ctx, "expenses"); !errors.Is(err, storage.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}

	if err := s.Put(ctx, "expenses", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "expenses", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Get(ctx, "expenses")
	if err != nil || string(got) != `[{"id":1}]` {
		t.Fatalf("unexpected get: %q err=%v", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "expenses.json" {
		t.Fatalf("expected only expenses.json, found %v", entries)
	}
}

func TestFileSlotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := New(dir)
	if err := s.Put(ctx, "expenses", []byte(`[1,2]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopened, _ := New(dir)
	got, err := reopened.Get(ctx, "expenses")
	if err != nil || string(got) != `[1,2]` {
		t.Fatalf("unexpected get after reopen: %q err=%v", got, err)
	}
}

func TestFileSlotRejectsPathKeys(t *testing.T) {
	s, _ := New(t.TempDir())
	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		if err := s.Put(context.Background(), key, []byte(`[]`)); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
