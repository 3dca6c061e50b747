package sheets

import (
	"context"

	"expensetracker/internal/core"
)

// SnapshotWriter replaces a mirrored copy of the collection with expenses.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, expenses []core.Expense) error
}
