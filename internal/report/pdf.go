package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"expensetracker/internal/core"
)

// BuildPDF renders a one-table summary of expenses.
func BuildPDF(expenses []core.Expense, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Expense Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Expenses: %d", len(expenses)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", core.FormatAmount(core.Total(expenses))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(15, 7, "ID")
	pdf.Cell(85, 7, "Name")
	pdf.Cell(40, 7, "Amount")
	pdf.Cell(30, 7, "Date")
	pdf.Ln(7)

	// gofpdf core fonts are cp1252; names are transcoded so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 11)
	for _, e := range expenses {
		pdf.Cell(15, 7, fmt.Sprintf("%d", e.ID))
		pdf.Cell(85, 7, tr(e.Name))
		pdf.Cell(40, 7, core.FormatAmount(e.Amount))
		pdf.Cell(30, 7, e.Date.Display())
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
