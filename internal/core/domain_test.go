package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-07-01", NewDate(2024, 7, 1), true},
		{" 2024-07-01 ", NewDate(2024, 7, 1), true},
		{"2024-05-15T00:00:00.000Z", NewDate(2024, 5, 15), true},
		{"2024-05-15T23:30:00-02:00", NewDate(2024, 5, 16), true},
		{"15/05/2024", Date{}, false},
		{"", Date{}, false},
		{"2024-13-01", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.want.Time) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want.ISO(), got.ISO(), err)
			}
		} else if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, 6, 1))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-06-01"` {
		t.Fatalf("unexpected json %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-06-01T00:00:00.000Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !d.SameDay(NewDate(2024, 6, 1)) {
		t.Fatalf("unexpected date %s", d.ISO())
	}
	if err := json.Unmarshal([]byte(`12`), &d); err == nil {
		t.Fatalf("expected error for non-string date")
	}

	var e Expense
	if err := json.Unmarshal([]byte(`{"id":2,"name":"Rent","amount":250,"date":null}`), &e); err != nil {
		t.Fatalf("unmarshal null date: %v", err)
	}
	if !e.Date.IsZero() || e.Date.ISO() != "" || e.Date.Display() != "" {
		t.Fatalf("expected unset date, got %v", e.Date.Time)
	}
	b, err = json.Marshal(e.Date)
	if err != nil || string(b) != "null" {
		t.Fatalf("unset date should marshal to null, got %s (err=%v)", b, err)
	}
}

func TestDateDisplay(t *testing.T) {
	if got := NewDate(2024, 6, 5).Display(); got != "05/06/2024" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestDraftValidate(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"ok", Draft{Name: "Coffee", Amount: "4.5"}, nil},
		{"blank name", Draft{Name: "   ", Amount: "4.5"}, ErrEmptyName},
		{"empty amount", Draft{Name: "Coffee", Amount: ""}, ErrEmptyAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.want != nil && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected validation error to wrap ErrInvalidInput")
			}
		})
	}
}

func TestDraftParse(t *testing.T) {
	today := NewDate(2025, 1, 2)

	name, amount, date, err := Draft{Name: " Coffee ", Amount: "4.5", Date: "2024-07-01"}.Parse(today)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if name != "Coffee" || amount != 4.5 || !date.SameDay(NewDate(2024, 7, 1)) {
		t.Fatalf("unexpected parse: %q %v %s", name, amount, date.ISO())
	}

	_, _, date, err = Draft{Name: "Tea", Amount: "2"}.Parse(today)
	if err != nil || !date.SameDay(today) {
		t.Fatalf("expected empty date to default to today, got %s (err=%v)", date.ISO(), err)
	}

	bads := []struct {
		draft Draft
		want  error
	}{
		{Draft{Name: "x", Amount: "abc", Date: "2024-07-01"}, ErrInvalidAmount},
		{Draft{Name: "x", Amount: "-1", Date: "2024-07-01"}, ErrInvalidAmount},
		{Draft{Name: "x", Amount: "1", Date: "yesterday"}, ErrInvalidDate},
		{Draft{Name: "", Amount: "1", Date: "2024-07-01"}, ErrEmptyName},
	}
	for i, tc := range bads {
		if _, _, _, err := tc.draft.Parse(today); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestDraftFromRoundTrip(t *testing.T) {
	e := Expense{ID: 7, Name: "Books", Amount: 12.345, Date: NewDate(2024, 2, 29)}
	d := DraftFrom(e)
	if d.Name != "Books" || d.Amount != "12.345" || d.Date != "2024-02-29" {
		t.Fatalf("unexpected draft %+v", d)
	}
	name, amount, date, err := d.Parse(NewDate(2025, 1, 1))
	if err != nil || name != e.Name || amount != e.Amount || !date.SameDay(e.Date) {
		t.Fatalf("round trip mismatch: %q %v %s err=%v", name, amount, date.ISO(), err)
	}
}

func TestNewDraft(t *testing.T) {
	d := NewDraft(NewDate(2024, 7, 1))
	if d.Name != "" || d.Amount != "" || d.Date != "2024-07-01" {
		t.Fatalf("unexpected draft %+v", d)
	}
}
