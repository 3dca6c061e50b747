// Package report renders the expense collection as downloadable files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"expensetracker/internal/core"
)

// WriteCSV writes one row per expense followed by a total row.
func WriteCSV(w io.Writer, expenses []core.Expense) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write([]string{"ID", "Name", "Amount", "Date"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range expenses {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			fmt.Sprintf("%.2f", e.Amount),
			e.Date.ISO(),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write expense %d: %w", e.ID, err)
		}
	}

	if err := csvWriter.Write([]string{"", "Total", fmt.Sprintf("%.2f", core.Total(expenses)), ""}); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
