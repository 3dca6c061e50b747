package tracker

import "expensetracker/internal/core"

// FormMode is the state of the entry form.
type FormMode int

const (
	FormClosed FormMode = iota
	FormAdd
	FormEdit
)

func (m FormMode) String() string {
	switch m {
	case FormAdd:
		return "add"
	case FormEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form is a snapshot of the entry form.
type Form struct {
	Mode   FormMode
	EditID int64 // only meaningful in FormEdit
	Draft  core.Draft
	// Err holds the last validation failure while the form stays open.
	Err error
}

func (f Form) Open() bool {
	return f.Mode != FormClosed
}

func (f Form) Editing() bool {
	return f.Mode == FormEdit
}
