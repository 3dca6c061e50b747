package google

import (
	"fmt"
	"strings"

	"expensetracker/internal/core"
)

var snapshotHeader = []any{"ID", "Name", "Amount", "Date"}

// snapshotRows lays out the collection as header, one row per expense and a
// trailing total row.
func snapshotRows(expenses []core.Expense) [][]any {
	rows := make([][]any, 0, len(expenses)+2)
	rows = append(rows, snapshotHeader)
	for _, e := range expenses {
		rows = append(rows, []any{e.ID, e.Name, e.Amount, e.Date.ISO()})
	}
	rows = append(rows, []any{"", "Total", core.Total(expenses), ""})
	return rows
}

// sheetRange quotes sheet names that contain spaces, as the A1 notation requires.
func sheetRange(sheet, cells string) string {
	if strings.ContainsAny(sheet, " '!") {
		sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return fmt.Sprintf("%s!%s", sheet, cells)
}
