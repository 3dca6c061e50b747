// Package tracker holds the in-memory expense list, the entry form state
// and mirrors every change to persistent storage.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

// Persister loads and saves the whole collection. *storage.Store implements it.
type Persister interface {
	Load(ctx context.Context) ([]core.Expense, error)
	Save(ctx context.Context, expenses []core.Expense) error
}

type ChangeOp string

const (
	OpAdd    ChangeOp = "add"
	OpEdit   ChangeOp = "edit"
	OpRemove ChangeOp = "remove"
)

// ChangeEvent describes a persisted mutation.
type ChangeEvent struct {
	Op      ChangeOp
	ID      int64
	Summary core.Summary
}

// Notifier is told about every persisted mutation.
type Notifier interface {
	NotifyChange(ctx context.Context, ev ChangeEvent) error
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l.WithComponent(log.ComponentTracker) }
}

// Tracker serializes all operations with a mutex. Mutations are saved before
// they become visible, so a failed save leaves the collection untouched.
type Tracker struct {
	mu       sync.Mutex
	store    Persister
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time

	expenses []core.Expense
	nextID   int64
	form     Form
}

// New loads the collection from store. Corrupt stored data is logged and
// replaced by the seed expenses; any other load error is returned.
func New(ctx context.Context, store Persister, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:  store,
		logger: log.Default(log.ComponentTracker),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	expenses, err := store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrCorruptData):
		t.logger.WarnContext(ctx, "Stored expenses are unreadable, starting from seed data",
			log.FieldError, err, log.FieldOperation, log.OpLoad)
	case err != nil:
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	t.expenses = expenses
	t.nextID = core.NextID(expenses)
	t.form = Form{Draft: core.NewDraft(t.today())}

	t.logger.InfoContext(ctx, "Expenses loaded",
		log.FieldCount, len(expenses),
		log.FieldTotal, core.Total(expenses))
	return t, nil
}

func (t *Tracker) today() core.Date {
	return core.DateOf(t.now())
}

// Expenses returns a copy of the collection in insertion order.
func (t *Tracker) Expenses() []core.Expense {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.expenses)
}

// Get returns the expense with the given id.
func (t *Tracker) Get(id int64) (core.Expense, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOf(id); i >= 0 {
		return t.expenses[i], true
	}
	return core.Expense{}, false
}

// Total is recomputed from the current collection on every call.
func (t *Tracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return core.Total(t.expenses)
}

func (t *Tracker) Summary() core.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return core.Summarize(t.expenses)
}

func (t *Tracker) Form() Form {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.form
}

// OpenNew opens the form for a new expense with a fresh draft.
func (t *Tracker) OpenNew() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form = Form{Mode: FormAdd, Draft: core.NewDraft(t.today())}
}

// StartEdit opens the form populated from the expense with the given id.
// It reports false and changes nothing when the id is unknown.
func (t *Tracker) StartEdit(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.form = Form{Mode: FormEdit, EditID: id, Draft: core.DraftFrom(t.expenses[i])}
	return true
}

// Cancel closes the form and discards the draft.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetForm()
}

// Add appends a new expense built from d. The form must have been opened
// with OpenNew, otherwise ErrNotAdding is returned and nothing changes.
// Invalid input leaves the collection unchanged and keeps the form open.
func (t *Tracker) Add(ctx context.Context, d core.Draft) (core.Expense, error) {
	e, ev, err := t.add(ctx, d)
	if err != nil {
		return core.Expense{}, err
	}
	t.notify(ctx, ev)
	return e, nil
}

func (t *Tracker) add(ctx context.Context, d core.Draft) (core.Expense, ChangeEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.form.Mode != FormAdd {
		return core.Expense{}, ChangeEvent{}, core.ErrNotAdding
	}

	name, amount, date, err := d.Parse(t.today())
	if err != nil {
		t.rejectDraft(d, err)
		return core.Expense{}, ChangeEvent{}, err
	}

	e := core.Expense{ID: t.nextID, Name: name, Amount: amount, Date: date}
	next := append(slices.Clone(t.expenses), e)
	if err := t.commit(ctx, next); err != nil {
		t.rejectDraft(d, err)
		return core.Expense{}, ChangeEvent{}, err
	}
	t.nextID++
	t.resetForm()

	t.logger.InfoContext(ctx, "Expense added",
		log.NewFields().WithExpense(e.ID, e.Name, e.Amount).WithOperation(log.OpAdd).ToSlice()...)
	return e, t.event(OpAdd, e.ID), nil
}

// CommitEdit replaces the expense being edited with the values from d.
// Without an active edit it returns ErrNotEditing. If the target was removed
// in the meantime the form closes and ErrNotFound is returned.
func (t *Tracker) CommitEdit(ctx context.Context, d core.Draft) (core.Expense, error) {
	e, ev, err := t.commitEdit(ctx, d)
	if err != nil {
		return core.Expense{}, err
	}
	t.notify(ctx, ev)
	return e, nil
}

func (t *Tracker) commitEdit(ctx context.Context, d core.Draft) (core.Expense, ChangeEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.form.Mode != FormEdit {
		return core.Expense{}, ChangeEvent{}, core.ErrNotEditing
	}

	name, amount, date, err := d.Parse(t.today())
	if err != nil {
		t.rejectDraft(d, err)
		return core.Expense{}, ChangeEvent{}, err
	}

	i := t.indexOf(t.form.EditID)
	if i < 0 {
		t.resetForm()
		return core.Expense{}, ChangeEvent{}, core.ErrNotFound
	}

	next := slices.Clone(t.expenses)
	e := next[i]
	e.Name, e.Amount, e.Date = name, amount, date
	next[i] = e
	if err := t.commit(ctx, next); err != nil {
		t.rejectDraft(d, err)
		return core.Expense{}, ChangeEvent{}, err
	}
	t.resetForm()

	t.logger.InfoContext(ctx, "Expense updated",
		log.NewFields().WithExpense(e.ID, e.Name, e.Amount).WithOperation(log.OpEdit).ToSlice()...)
	return e, t.event(OpEdit, e.ID), nil
}

// Remove deletes the expense with the given id. Unknown ids are a no-op and
// report false.
func (t *Tracker) Remove(ctx context.Context, id int64) (bool, error) {
	ev, removed, err := t.remove(ctx, id)
	if err != nil || !removed {
		return false, err
	}
	t.notify(ctx, ev)
	return true, nil
}

func (t *Tracker) remove(ctx context.Context, id int64) (ChangeEvent, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return ChangeEvent{}, false, nil
	}
	next := slices.Delete(slices.Clone(t.expenses), i, i+1)
	if err := t.commit(ctx, next); err != nil {
		return ChangeEvent{}, false, err
	}

	t.logger.InfoContext(ctx, "Expense removed",
		log.FieldExpenseID, id, log.FieldOperation, log.OpRemove)
	return t.event(OpRemove, id), true, nil
}

// commit saves next and, on success, makes it the current collection.
func (t *Tracker) commit(ctx context.Context, next []core.Expense) error {
	if err := t.store.Save(ctx, next); err != nil {
		t.logger.ErrorContext(ctx, "Failed to save expenses",
			log.FieldError, err, log.FieldOperation, log.OpSave, log.FieldCount, len(next))
		return fmt.Errorf("save expenses: %w", err)
	}
	t.expenses = next
	return nil
}

// rejectDraft keeps the failed input on an open form. A closed form stays blank.
func (t *Tracker) rejectDraft(d core.Draft, err error) {
	if !t.form.Open() {
		return
	}
	t.form.Draft = d
	t.form.Err = err
}

func (t *Tracker) resetForm() {
	t.form = Form{Draft: core.NewDraft(t.today())}
}

func (t *Tracker) event(op ChangeOp, id int64) ChangeEvent {
	return ChangeEvent{Op: op, ID: id, Summary: core.Summarize(t.expenses)}
}

func (t *Tracker) indexOf(id int64) int {
	return slices.IndexFunc(t.expenses, func(e core.Expense) bool { return e.ID == id })
}

// notify runs outside the lock. Failures are logged and never undo the change.
func (t *Tracker) notify(ctx context.Context, ev ChangeEvent) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.NotifyChange(ctx, ev); err != nil {
		t.logger.WarnContext(ctx, "Failed to publish change",
			log.FieldError, err, log.FieldOperation, string(ev.Op), log.FieldExpenseID, ev.ID)
	}
}
