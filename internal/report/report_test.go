package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"expensetracker/internal/core"
)

func TestWriteCSV(t *testing.T) {
	expenses := []core.Expense{
		{ID: 1, Name: "Groceries", Amount: 250, Date: core.NewDate(2024, 5, 15)},
		{ID: 5, Name: "Coffee, large", Amount: 4.5, Date: core.NewDate(2024, 7, 1)},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, expenses); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header, 2 rows and total, got %d records", len(records))
	}
	if records[2][1] != "Coffee, large" || records[2][2] != "4.50" || records[2][3] != "2024-07-01" {
		t.Fatalf("unexpected row %v", records[2])
	}
	if records[3][1] != "Total" || records[3][2] != "254.50" {
		t.Fatalf("unexpected total row %v", records[3])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "ID,Name,Amount,Date\n,Total,0.00,\n" {
		t.Fatalf("unexpected csv %q", got)
	}
}

func TestBuildPDF(t *testing.T) {
	b, err := BuildPDF(core.Seed(), time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}
