package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/sheets"
	"expensetracker/internal/storage"
)

// Loader reads the persisted collection. *storage.Store implements it.
type Loader interface {
	Load(ctx context.Context) ([]core.Expense, error)
}

// MirrorWorker copies the persisted collection to a spreadsheet whenever it
// changes. Every run writes the full snapshot, so lost or reordered messages
// are repaired by the next one.
type MirrorWorker struct {
	loader Loader
	writer sheets.SnapshotWriter
	logger *log.Logger
	now    func() time.Time

	mu         sync.Mutex
	lastLoaded time.Time
}

func NewMirrorWorker(loader Loader, writer sheets.SnapshotWriter, logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.Default(log.ComponentWorker)
	}
	return &MirrorWorker{
		loader: loader,
		writer: writer,
		logger: logger.WithComponent(log.ComponentWorker),
		now:    time.Now,
	}
}

// HandleChange processes a change notification from AMQP. Messages published
// before the last snapshot was loaded are already reflected in the sheet and
// are skipped.
func (w *MirrorWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !msg.Timestamp.IsZero() && msg.Timestamp.Before(w.lastLoaded) {
		w.logger.DebugContext(ctx, "Change already mirrored",
			log.FieldOperation, msg.Op,
			log.FieldExpenseID, msg.ID)
		return nil
	}

	w.logger.InfoContext(ctx, "Processing change message",
		log.FieldOperation, msg.Op,
		log.FieldExpenseID, msg.ID,
		log.FieldCount, msg.Count)

	return w.mirrorLocked(ctx)
}

// Resync mirrors the current collection regardless of pending messages.
// It runs at startup and on the configured schedule to recover from
// worker downtime.
func (w *MirrorWorker) Resync(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mirrorLocked(ctx)
}

func (w *MirrorWorker) mirrorLocked(ctx context.Context) error {
	loadedAt := w.now()
	expenses, err := w.loader.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrCorruptData):
		// Mirroring the seed fallback would overwrite a sheet that may hold
		// the last good copy.
		w.logger.WarnContext(ctx, "Stored expenses are unreadable, mirror skipped",
			log.FieldError, err, log.FieldOperation, log.OpMirror)
		return nil
	case err != nil:
		return fmt.Errorf("load expenses: %w", err)
	}

	if err := w.writer.WriteSnapshot(ctx, expenses); err != nil {
		w.logger.ErrorContext(ctx, "Failed to mirror expenses",
			log.FieldError, err, log.FieldOperation, log.OpMirror)
		return fmt.Errorf("write snapshot: %w", err)
	}
	w.lastLoaded = loadedAt

	w.logger.InfoContext(ctx, "Expenses mirrored",
		log.FieldOperation, log.OpMirror,
		log.FieldCount, len(expenses),
		log.FieldTotal, core.Total(expenses))
	return nil
}
