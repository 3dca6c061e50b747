package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// ISODateLayout is the wire and form representation of a Date.
	ISODateLayout = "2006-01-02"
	// DisplayDateLayout is how dates are shown in the list view.
	DisplayDateLayout = "02/01/2006"
)

type (
	// Date is a calendar day. The time-of-day part is always midnight UTC.
	Date struct {
		time.Time
	}

	Expense struct {
		ID     int64   `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Date   Date    `json:"date"`
	}

	// Draft mirrors the raw entry form. Every field is a string because it
	// holds user input before parsing.
	Draft struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
		Date   string `json:"date"`
	}
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyName     = fmt.Errorf("%w: empty name", ErrInvalidInput)
	ErrEmptyAmount   = fmt.Errorf("%w: empty amount", ErrInvalidInput)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
	ErrInvalidDate   = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)

	ErrNotFound   = errors.New("expense not found")
	ErrNotEditing = errors.New("no expense is being edited")
	ErrNotAdding  = errors.New("form is not open for a new expense")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate accepts a plain ISO date or a full RFC 3339 timestamp. Timestamps
// are reduced to their UTC calendar day, which is how browsers serialize a
// date-only value.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t.UTC()), nil
	}
	return Date{}, ErrInvalidDate
}

// ISO returns the date as YYYY-MM-DD, or "" for an unset date.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(ISODateLayout)
}

// Display returns the date as dd/mm/yyyy, or "" for an unset date.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DisplayDateLayout)
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(o Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := o.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MarshalJSON writes an unset date as null, the same way a browser
// serializes an invalid Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.ISO())), nil
}

// UnmarshalJSON accepts null as an unset date so one such record does not
// make the whole stored collection unreadable.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a JSON string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

// NewDraft returns an empty draft dated today.
func NewDraft(today Date) Draft {
	return Draft{Date: today.ISO()}
}

// DraftFrom fills a draft with the current values of e.
func DraftFrom(e Expense) Draft {
	return Draft{
		Name:   e.Name,
		Amount: FormatAmountInput(e.Amount),
		Date:   e.Date.ISO(),
	}
}

// Validate only checks that the required fields are present.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Amount == "" {
		return ErrEmptyAmount
	}
	return nil
}

// Parse validates the draft and converts it to typed values. An empty date
// falls back to today.
func (d Draft) Parse(today Date) (name string, amount float64, date Date, err error) {
	if err = d.Validate(); err != nil {
		return "", 0, Date{}, err
	}
	amount, err = ParseAmount(d.Amount)
	if err != nil {
		return "", 0, Date{}, err
	}
	date = today
	if strings.TrimSpace(d.Date) != "" {
		date, err = ParseDate(d.Date)
		if err != nil {
			return "", 0, Date{}, err
		}
	}
	return strings.TrimSpace(d.Name), amount, date, nil
}
